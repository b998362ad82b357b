// Package generator writes the static site: one page per language, an index
// page and a stylesheet.
package generator

import (
	"bytes"
	"embed"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/logging"
	"github.com/arthur-debert/dictus/pkg/model"
)

//go:embed templates
var embedded embed.FS

// Template and asset names. A file with the same name in the template
// directory replaces the embedded one.
const (
	LayoutTemplate   = "layout.html.tmpl"
	IndexTemplate    = "index.html.tmpl"
	LanguageTemplate = "lang.html.tmpl"
	Stylesheet       = "dictus.css"
	IndexPage        = "index.html"
)

var funcs = template.FuncMap{
	"join":    strings.Join,
	"anchor":  link.AnchorID,
	"trusted": func(s string) template.HTML { return template.HTML(s) },
}

// Options configures a Generator
type Options struct {
	SiteName    string
	OutputDir   string
	TemplateDir string
}

// Generator renders languages into OutputDir
type Generator struct {
	fs         afero.Fs
	templates  *template.Template
	stylesheet []byte
	siteName   string
	outputDir  string
	log        zerolog.Logger
}

type languageLink struct {
	Name        string
	DisplayName string
	Href        string
	Lemmas      int
	Current     bool
}

type pageData struct {
	SiteName   string
	Stylesheet string
	Language   *model.Language
	Languages  []languageLink
}

// New loads templates, preferring files in opts.TemplateDir
func New(fs afero.Fs, opts Options) (*Generator, error) {
	g := &Generator{
		fs:        fs,
		siteName:  opts.SiteName,
		outputDir: opts.OutputDir,
		log:       logging.GetLogger("generator"),
	}

	root := template.New("dictus").Funcs(funcs)
	for _, name := range []string{LayoutTemplate, IndexTemplate, LanguageTemplate} {
		content, err := g.asset(opts.TemplateDir, name)
		if err != nil {
			return nil, err
		}
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return nil, errors.Wrap(err, errors.ErrTemplate, "failed to parse template").
				WithDetail("template", name)
		}
	}
	g.templates = root

	css, err := g.asset(opts.TemplateDir, Stylesheet)
	if err != nil {
		return nil, err
	}
	g.stylesheet = css

	return g, nil
}

// asset reads name from dir when present there, else from the embedded set
func (g *Generator) asset(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		if ok, _ := afero.Exists(g.fs, path); ok {
			data, err := afero.ReadFile(g.fs, path)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrFileRead, "failed to read template").
					WithDetail("path", path)
			}
			g.log.Debug().Str("path", path).Msg("Using custom template")
			return data, nil
		}
	}
	data, err := embedded.ReadFile("templates/" + name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "missing embedded template").
			WithDetail("template", name)
	}
	return data, nil
}

// Generate writes every page and returns the written paths in order
func (g *Generator) Generate(langs []*model.Language) ([]string, error) {
	if err := g.fs.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "failed to create output directory").
			WithDetail("path", g.outputDir)
	}

	var written []string
	for _, lang := range langs {
		data := g.page(langs, lang)
		path, err := g.write(lang.Name+".html", LanguageTemplate, data)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	path, err := g.write(IndexPage, IndexTemplate, g.page(langs, nil))
	if err != nil {
		return nil, err
	}
	written = append(written, path)

	cssPath := filepath.Join(g.outputDir, Stylesheet)
	if err := afero.WriteFile(g.fs, cssPath, g.stylesheet, 0644); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to write stylesheet").
			WithDetail("path", cssPath)
	}
	written = append(written, cssPath)

	g.log.Info().Int("pages", len(langs)+1).Str("output", g.outputDir).Msg("Site generated")
	return written, nil
}

func (g *Generator) page(langs []*model.Language, current *model.Language) pageData {
	links := make([]languageLink, 0, len(langs))
	for _, l := range langs {
		links = append(links, languageLink{
			Name:        l.Name,
			DisplayName: l.DisplayName,
			Href:        l.Name + ".html",
			Lemmas:      len(l.Lemmas),
			Current:     l == current,
		})
	}
	return pageData{
		SiteName:   g.siteName,
		Stylesheet: Stylesheet,
		Language:   current,
		Languages:  links,
	}
}

func (g *Generator) write(file, tmpl string, data pageData) (string, error) {
	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return "", errors.Wrap(err, errors.ErrTemplate, "failed to execute template").
			WithDetail("template", tmpl)
	}

	path := filepath.Join(g.outputDir, file)
	if err := afero.WriteFile(g.fs, path, buf.Bytes(), 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrFileWrite, "failed to write page").
			WithDetail("path", path)
	}
	g.log.Debug().Str("path", path).Int("bytes", buf.Len()).Msg("Wrote page")
	return path, nil
}
