package dictus

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dictus/internal/version"
	"github.com/arthur-debert/dictus/pkg/cobrax/topics"
	"github.com/arthur-debert/dictus/pkg/display"
	"github.com/arthur-debert/dictus/pkg/logging"
)

//go:embed topics
var topicsFS embed.FS

// app holds the state shared by every command of one invocation
type app struct {
	fs         afero.Fs
	verbosity  int
	configFile string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	initTemplateFormatting()

	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "dictus",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newLinksCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newLangsCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		manager, err := topics.Load(sub, topics.Options{Renderer: topics.GlamourRenderer{}})
		if err == nil {
			manager.Install(rootCmd)
		} else {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// renderer returns a display renderer for the command's output
func (a *app) renderer(cmd *cobra.Command) (*display.Renderer, error) {
	format, err := display.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return display.NewRenderer(cmd.OutOrStdout(), resolveFormat(format, cmd.OutOrStdout()))
}

// resolveFormat detects the auto format when w is a file and falls back
// to plain text otherwise.
func resolveFormat(format display.Format, w io.Writer) display.Format {
	if format != display.FormatAuto {
		return format
	}
	if f, ok := w.(*os.File); ok {
		return format.Resolve(f)
	}
	return display.FormatText
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionLine, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
