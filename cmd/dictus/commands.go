package dictus

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dictus/pkg/display"
	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/generator"
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/logging"
	"github.com/arthur-debert/dictus/pkg/model"
	"github.com/arthur-debert/dictus/pkg/parser"
	"github.com/arthur-debert/dictus/pkg/richtext"
	"github.com/arthur-debert/dictus/pkg/search"
)

func newBuildCmd(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			defer logging.LogDuration(start, "build")

			proj, err := a.loadProject(cmd, src, map[string]string{
				"out":       "output_dir",
				"site-name": "site_name",
				"templates": "template_dir",
			})
			if err != nil {
				return err
			}
			cfg := proj.config

			gen, err := generator.New(a.fs, generator.Options{
				SiteName:    cfg.SiteName,
				OutputDir:   cfg.OutputDir,
				TemplateDir: cfg.TemplateDir,
			})
			if err != nil {
				return err
			}
			files, err := gen.Generate(proj.result.Languages)
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderBuildSummary(display.BuildSummary{
				OutputDir: cfg.OutputDir,
				Languages: display.NewLanguageViews(proj.result.Languages),
				Files:     files,
				Links:     proj.result.Registry.Stats(),
				Duration:  time.Since(start),
			})
		},
	}

	src.register(cmd)
	cmd.Flags().StringP("out", "o", "", MsgFlagOut)
	cmd.Flags().String("site-name", "", MsgFlagSiteName)
	cmd.Flags().String("templates", "", MsgFlagTemplates)
	return cmd
}

func newLinksCmd(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:     "links <language:lemma[:index]>",
		Short:   MsgLinksShort,
		Long:    MsgLinksLong,
		Example: MsgLinksExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject(cmd, src, nil)
			if err != nil {
				return err
			}
			token, lemma, err := findLemma(proj.result, args[0])
			if err != nil {
				return err
			}
			index := token.Index
			if index == 0 {
				index = 1
			}
			def, ok := lemma.Definition(index)
			if !ok {
				return errors.Newf(errors.ErrNotFound, "%s has no sense %d", lemma.Name, index).
					WithDetail("senses", len(lemma.Definitions))
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderLinks(display.NewLinksView(def.Key(), def.Links(), def.Backlinks()))
		},
	}

	src.register(cmd)
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var (
		src   sourceFlags
		width int
	)

	cmd := &cobra.Command{
		Use:     "show <language:lemma>",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// glamour needs the Markdown source, not HTML
			raw := parser.WithRenderer(func(link.Resolver) richtext.Renderer { return richtext.Identity })
			proj, err := a.loadProject(cmd, src, nil, raw)
			if err != nil {
				return err
			}
			token, lemma, err := findLemma(proj.result, args[0])
			if err != nil {
				return err
			}
			if token.Index != 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrLemmaIndex)
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderLemma(lemma, width)
		},
	}

	src.register(cmd)
	cmd.Flags().IntVarP(&width, "width", "w", 80, MsgFlagWidth)
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		src                           sourceFlags
		lang, lemma, gloss, pos, text string
	)

	cmd := &cobra.Command{
		Use:     "search",
		Short:   MsgSearchShort,
		Long:    MsgSearchLong,
		Example: MsgSearchExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lemma == "" && gloss == "" && pos == "" && text == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoQuery)
			}
			proj, err := a.loadProject(cmd, src, nil)
			if err != nil {
				return err
			}
			if lang != "" {
				if lang, err = proj.result.Registry.ResolveLanguage(lang); err != nil {
					return err
				}
			}

			index := search.New(proj.result.Languages)
			var hits []search.Hit
			switch {
			case lemma != "":
				hits = index.ByLemma(lang, lemma)
			case gloss != "" && pos != "":
				hits = index.ByGlossAndPOS(lang, gloss, pos)
			case gloss != "":
				hits = index.ByGloss(lang, gloss)
			case pos != "":
				hits = index.ByPOS(lang, pos)
			default:
				hits = index.ByText(lang, text)
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderHits(display.NewHitViews(proj.result.Languages, hits))
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&lang, "lang", "l", "", MsgFlagLang)
	cmd.Flags().StringVar(&lemma, "lemma", "", MsgFlagLemma)
	cmd.Flags().StringVarP(&gloss, "gloss", "g", "", MsgFlagGloss)
	cmd.Flags().StringVarP(&pos, "pos", "p", "", MsgFlagPOS)
	cmd.Flags().StringVarP(&text, "text", "t", "", MsgFlagText)
	return cmd
}

func newLangsCmd(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:     "langs",
		Short:   MsgLangsShort,
		Long:    MsgLangsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := a.loadProject(cmd, src, nil)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderLanguages(display.NewLanguageViews(proj.result.Languages))
		},
	}

	src.register(cmd)
	return cmd
}

// findLemma resolves a language:lemma[:index] argument against result
func findLemma(result *parser.Result, arg string) (link.Token, *model.Lemma, error) {
	token, err := link.ParseToken(arg)
	if err != nil {
		return link.Token{}, nil, err
	}
	if token.Language == "" {
		return link.Token{}, nil, errors.Newf(errors.ErrInvalidInput, MsgErrNoLanguage, token.Lemma)
	}

	name, err := result.Registry.ResolveLanguage(token.Language)
	if err != nil {
		return link.Token{}, nil, err
	}
	lang, ok := result.Language(name)
	if !ok {
		return link.Token{}, nil, errors.Newf(errors.ErrNotFound, MsgErrUnknownLang, name)
	}
	lemma, ok := lang.Lemma(token.Lemma)
	if !ok {
		return link.Token{}, nil, errors.Newf(errors.ErrNotFound, MsgLemmaMissing, token.Lemma, lang.DisplayName).
			WithDetail("language", lang.Name).
			WithDetail("lemma", token.Lemma)
	}
	return token, lemma, nil
}
