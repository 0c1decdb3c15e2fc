// Package navigation derives column and breadcrumb navigation for a flat set of
// pages addressed by slash delimited paths.
//
// A pass indexes every eligible page (category and article layouts by default),
// groups them into columns by depth, and then resolves each page against that
// shared, read-only index. Pages outside the hierarchy receive the root column
// only. Nothing is cached between passes.
package navigation
