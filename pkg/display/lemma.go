package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/model"
)

// LemmaMarkdown writes a lemma as a Markdown document: its text, then one
// section per definition with glosses, tags, links and backlinks. Text
// fields are used as stored, so lemmas parsed with an identity renderer
// keep their Markdown source.
func LemmaMarkdown(lemma *model.Lemma) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", lemma.Name)
	fmt.Fprintf(&b, "*%s*", lemma.Language.DisplayName)
	if len(lemma.Tags) > 0 {
		fmt.Fprintf(&b, " · %s", strings.Join(lemma.Tags, ", "))
	}
	b.WriteString("\n\n")
	if text := strings.TrimSpace(lemma.Text); text != "" {
		b.WriteString(text + "\n\n")
	}

	for _, def := range lemma.Definitions {
		heading := fmt.Sprintf("## %d.", def.Index)
		if len(def.POS) > 0 {
			heading += " " + strings.Join(def.POS, ", ")
		}
		b.WriteString(heading + "\n\n")

		if text := strings.TrimSpace(def.Text); text != "" {
			b.WriteString(text + "\n\n")
		}
		if len(def.Glosses) > 0 {
			fmt.Fprintf(&b, "- **glosses:** %s\n", strings.Join(def.Glosses, "; "))
		}
		if len(def.Tags) > 0 {
			fmt.Fprintf(&b, "- **tags:** %s\n", strings.Join(def.Tags, ", "))
		}
		writeGroups(&b, "", def.Links())
		writeGroups(&b, " (from)", def.Backlinks())
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeGroups(b *strings.Builder, suffix string, groups []link.Group) {
	for _, g := range groups {
		labels := make([]string, 0, len(g.References))
		for _, r := range g.References {
			labels = append(labels, fmt.Sprintf("%s:%s(%d)", r.Language, r.Lemma, r.Index))
		}
		fmt.Fprintf(b, "- **%s%s:** %s\n", g.Type, suffix, strings.Join(labels, ", "))
	}
}

// RenderLemma writes a lemma through glamour. JSON output is not supported
// for lemmas; it falls back to the raw Markdown.
func (r *Renderer) RenderLemma(lemma *model.Lemma, width int) error {
	markdown := LemmaMarkdown(lemma)
	if r.format == FormatJSON {
		_, err := fmt.Fprint(r.writer, markdown)
		return err
	}

	options := []glamour.TermRendererOption{}
	if r.format == FormatTerminal {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to create markdown renderer")
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to render lemma").
			WithDetail("lemma", lemma.Name)
	}
	_, err = fmt.Fprint(r.writer, out)
	return err
}
