// Package display presents parse results on the terminal.
//
// Listings (links, search hits, languages) are text/template files whose
// output carries lipbalm style tags; terminal output expands the tags with
// the styles from styles.yaml, plain output strips them, and JSON output
// skips templates altogether. Lemmas are shown as Markdown through glamour
// and build summaries as pterm tables.
package display
