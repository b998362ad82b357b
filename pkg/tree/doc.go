// Package tree holds the generic, order-preserving key-value tree that every
// source dialect decodes into.
//
// A decoded document is a *Map whose values are one of:
//
//	string, int64, float64, bool, nil, []any, *Map
//
// Date and time literals are kept as their source text. Key order follows the
// source document, which is what gives lemmas and link groups a stable order.
package tree
