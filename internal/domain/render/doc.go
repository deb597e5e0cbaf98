// Package render dispatches resolved content records to site renderers.
//
// Site renderers live outside this module. The browser only needs to know
// which renderer a record goes to, so templates form a closed set and the
// registry is checked against that set when it is built: a typo in a
// capability table is a startup error, not a silent fallthrough.
package render
