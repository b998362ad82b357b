package display

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/lipbalm"
	"github.com/arthur-debert/dictus/pkg/logging"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// Renderer writes views to an output in one format. FormatAuto must be
// resolved by the caller; it is treated as text.
type Renderer struct {
	templates *template.Template
	styles    lipbalm.StyleMap
	writer    io.Writer
	format    Format
}

// NewRenderer creates a renderer for w
func NewRenderer(w io.Writer, format Format) (*Renderer, error) {
	log := logging.GetLogger("display.renderer")

	if format == FormatTerminal {
		renderer := lipgloss.NewRenderer(w)
		lipbalm.SetDefaultRenderer(renderer)
		log.Debug().
			Str("colorProfile", fmt.Sprintf("%v", renderer.ColorProfile())).
			Msg("Lipgloss renderer created")
	}

	tmpl, err := template.New("display").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplate, "failed to parse display templates")
	}

	return &Renderer{
		templates: tmpl,
		styles:    DefaultStyles(),
		writer:    w,
		format:    format,
	}, nil
}

// Format returns the renderer's output format
func (r *Renderer) Format() Format {
	return r.format
}

// RenderLinks writes the links and backlinks of one definition
func (r *Renderer) RenderLinks(view LinksView) error {
	return r.render("links.tmpl", view)
}

// RenderHits writes search hits
func (r *Renderer) RenderHits(hits []HitView) error {
	return r.render("hits.tmpl", hits)
}

// RenderLanguages writes the language listing
func (r *Renderer) RenderLanguages(langs []LanguageView) error {
	return r.render("languages.tmpl", langs)
}

func (r *Renderer) render(name string, data interface{}) error {
	log := logging.GetLogger("display.renderer")

	if r.format == FormatJSON {
		return r.renderJSON(data)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrap(err, errors.ErrTemplate, "failed to execute template").
			WithDetail("template", name)
	}
	templateOutput := strings.Trim(buf.String(), "\n")
	log.Trace().Str("template", name).Str("templateOutput", templateOutput).Msg("Template executed")

	output, err := r.style(templateOutput)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.writer, output)
	return err
}

func (r *Renderer) style(tagged string) (string, error) {
	if r.format != FormatTerminal {
		return lipbalm.StripTags(tagged), nil
	}
	out, err := lipbalm.ExpandTags(tagged, r.styles)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "failed to expand style tags")
	}
	return out, nil
}

func (r *Renderer) renderJSON(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to encode JSON")
	}
	_, err = r.writer.Write(pretty.Pretty(raw))
	return err
}

// RenderError writes an error, with its code when it has one
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		return r.renderJSON(map[string]interface{}{
			"error":   err.Error(),
			"code":    errors.GetErrorCode(err),
			"details": errors.GetErrorDetails(err),
		})
	}

	tagged := "<error>Error:</error> " + template.HTMLEscapeString(err.Error())
	output, styleErr := r.style(tagged)
	if styleErr != nil {
		return styleErr
	}
	_, writeErr := fmt.Fprintln(r.writer, output)
	return writeErr
}

// RenderMessage writes a single message in a named style
func (r *Renderer) RenderMessage(style, message string) error {
	if r.format == FormatJSON {
		return r.renderJSON(map[string]string{"message": message})
	}
	output, err := r.style(fmt.Sprintf("<%s>%s</%s>", style, template.HTMLEscapeString(message), style))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.writer, output)
	return err
}
