// Package model holds the typed entities built from a decoded language file:
// Language, Lemma and Definition.
//
// Constructing a Definition registers each of its declared references with
// the link registry carried by Env, and renders its free text through Env's
// renderer. Entities never hold links themselves; Links and Backlinks query
// the registry by definition key.
package model
