// Package link parses cross-reference tokens and keeps the forward and
// backward link indices between dictionary definitions.
//
// A reference token has the shape
//
//	[lang:]lemma[:index]
//
// where a single colon followed by digits is read as a sense index, so
// "word:4" is sense 4 of "word" in the current language. A Registry owns the
// closed set of language identities for one parsing run, resolves loosely
// spelled language tokens against it, and stores every registered reference
// twice: under its origin (links) and under its resolved target (backlinks).
// Both indices are keyed by value-type Keys, so cycles such as mutual synonyms
// need no special handling.
package link
