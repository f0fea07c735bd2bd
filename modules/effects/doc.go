// Package effects describes the page's presentation effects as plain
// values. Each function takes the numbers a browser event carries (scroll
// offset, viewport height, intersection ratio) and returns the state the
// page should show. Rendering that state is left to templates and CSS.
//
// Stateful effects are explicit: Menu and CounterGroup own a small state
// machine instead of relying on page-global flags.
package effects
