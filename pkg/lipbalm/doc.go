/*
Package lipbalm renders text/template output through lipgloss styles written
as XML-like tags.

	styles := lipbalm.StyleMap{"lemma": lipgloss.NewStyle().Bold(true)}
	out, err := lipbalm.Render(`<lemma>{{.Name}}</lemma>`, data, styles)

ExpandTags applies styles to already expanded text; StripTags removes every
tag for plain output. Unknown tags keep their content unstyled.

Content inside <no-format> is only shown when the output has no colour
support, so plain output can carry markers that colour makes redundant:

	<success>resolved</success><no-format> (ok)</no-format>

Input that is not well formed XML is returned unchanged. Escape &, < and >
in data before tagging it.
*/
package lipbalm
