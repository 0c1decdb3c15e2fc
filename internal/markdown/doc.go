// Package markdown reads a content tree of markdown files into navigation
// pages and renders page bodies to HTML with goldmark.
package markdown
