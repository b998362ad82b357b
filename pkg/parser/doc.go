// Package parser turns a set of per-language source files into the sorted
// collection of languages for one run.
//
// Every file name is read before any content is parsed, because the link
// registry must know all language identities before it resolves a single
// reference. Files are then processed strictly in the order given; the first
// error aborts the run.
package parser
