package display

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/dictus/pkg/link"
)

// BuildSummary describes a finished build
type BuildSummary struct {
	OutputDir string         `json:"output_dir"`
	Languages []LanguageView `json:"languages"`
	Files     []string       `json:"files"`
	Links     link.Stats     `json:"links"`
	Duration  time.Duration  `json:"duration"`
}

// RenderBuildSummary writes a table of the generated languages followed by
// a one line result.
func (r *Renderer) RenderBuildSummary(s BuildSummary) error {
	if r.format == FormatJSON {
		return r.renderJSON(s)
	}
	if r.format != FormatTerminal {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	data := pterm.TableData{{"Language", "Name", "Lemmas", "POS"}}
	for _, l := range s.Languages {
		data = append(data, []string{
			l.DisplayName,
			l.Name,
			fmt.Sprint(l.Lemmas),
			fmt.Sprint(len(l.POS)),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	line := pterm.Success.Sprintf("Built %d languages (%d files, %d links) into %s in %s",
		len(s.Languages), len(s.Files), s.Links.References, s.OutputDir, s.Duration.Round(time.Millisecond))

	_, err = fmt.Fprintf(r.writer, "%s\n%s\n", table, line)
	return err
}
