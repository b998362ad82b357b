// Package topics adds file-backed help topics to a cobra command tree.
// "help <name>" shows a topic when no command of that name exists and
// "help topics" lists them.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dictus/pkg/errors"
)

// optionPrefix marks topics documenting a flag, e.g. option-dialect.md
const optionPrefix = "option-"

// Manager holds the topics loaded for one command tree
type Manager struct {
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	renderer     Renderer
	extensions   []string
}

// Topic is one help document
type Topic struct {
	Name    string
	Format  string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions of topic files. Defaults to .txt and .md.
	Extensions []string
	// Renderer formats topics. Defaults to PlainRenderer.
	Renderer Renderer
}

// Load reads every topic file in the root of fsys
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		renderer:   opts.Renderer,
		extensions: opts.Extensions,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "failed to list help topics")
	}
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || !slices.Contains(m.extensions, ext) {
			continue
		}
		content, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileRead, "failed to read help topic").
				WithDetail("topic", entry.Name())
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		m.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
	}
	return m, nil
}

// Get finds a topic by name. Flag spellings such as --dialect find the
// option topic for that flag.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics[optionPrefix+name]
	return topic, ok
}

// Names returns the topic names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes the formatted topic to w
func (m *Manager) Render(w io.Writer, topic *Topic) error {
	_, err := fmt.Fprint(w, m.renderer.Render(topic.Content, topic.Format))
	return err
}

// WriteList writes the topic index to w
func (m *Manager) WriteList(w io.Writer, program string) error {
	var general, options []string
	for _, name := range m.Names() {
		if strings.HasPrefix(name, optionPrefix) {
			options = append(options, "--"+strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	if len(general)+len(options) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the help command of root with one that also knows
// the topics of m.
func (m *Manager) Install(root *cobra.Command) {
	m.originalHelp = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				m.originalHelp(root, nil)
				return nil
			}
			if args[0] == "topics" {
				return m.WriteList(out, root.Name())
			}
			if target, _, err := root.Find(args); err == nil && target != root {
				m.originalHelp(target, nil)
				return nil
			}
			if topic, ok := m.Get(args[0]); ok {
				return m.Render(out, topic)
			}
			return errors.Newf(errors.ErrNotFound, "unknown help topic %q", args[0])
		},
	}

	root.SetHelpCommand(helpCmd)
}
