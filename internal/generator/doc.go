// Package generator runs full navigation passes over a page source, renders
// page bodies and writes the resulting navigation manifest.
package generator
