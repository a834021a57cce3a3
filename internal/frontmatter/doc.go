// Package frontmatter splits vault documents into their YAML header and
// body, parses the header, and rewrites the lifecycle state in place.
//
// A document looks like
//
//	---
//	title: Limits
//	state: scheduled
//	---
//	body text
//
// Only the header is ever interpreted; the body is carried through
// untouched when a document is rewritten.
package frontmatter
