// Package lint implements the markdown documentation checks: internal link
// resolution, fenced code block validation, table-of-contents consistency, and
// heading structure. It has no I/O of its own; callers hand it document bytes
// and receive issues back.
package lint
