package dictus

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build cross-linked dictionaries from TOML, YAML or JSON"
	MsgBuildShort      = "Generate the HTML dictionary"
	MsgLinksShort      = "List the links and backlinks of a definition"
	MsgShowShort       = "Render a lemma in the terminal"
	MsgSearchShort     = "Search definitions by lemma, gloss, part of speech or text"
	MsgLangsShort      = "List the parsed languages"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgLemmaMissing = "lemma %q not found in %s"
	MsgVersionLine  = "dictus %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrNoQuery     = "at least one of --lemma, --gloss, --pos or --text is required"
	MsgErrLemmaIndex  = "show takes language:lemma without a sense index"
	MsgErrNoLanguage  = "a language is required, e.g. english:%s"
	MsgErrUnknownLang = "language %q not found"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Path to a config file (TOML or YAML)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagIn        = "Source directory or file"
	MsgFlagOut       = "Output directory for generated pages"
	MsgFlagDialect   = "Source dialect: toml, yaml, json or auto"
	MsgFlagSiteName  = "Site name shown on generated pages"
	MsgFlagTemplates = "Directory with templates overriding the built-in ones"
	MsgFlagLang      = "Restrict the search to one language"
	MsgFlagLemma     = "Match lemmas by name"
	MsgFlagGloss     = "Match definitions by gloss"
	MsgFlagPOS       = "Match definitions by part of speech"
	MsgFlagText      = "Match definitions containing text"
	MsgFlagWidth     = "Wrap rendered text at this width (0 disables wrapping)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/links-long.txt
	msgLinksLongRaw string
	MsgLinksLong    = strings.TrimSpace(msgLinksLongRaw)

	//go:embed msgs/links-example.txt
	msgLinksExampleRaw string
	MsgLinksExample    = strings.TrimRight(msgLinksExampleRaw, "\n")

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/search-long.txt
	msgSearchLongRaw string
	MsgSearchLong    = strings.TrimSpace(msgSearchLongRaw)

	//go:embed msgs/search-example.txt
	msgSearchExampleRaw string
	MsgSearchExample    = strings.TrimRight(msgSearchExampleRaw, "\n")

	//go:embed msgs/langs-long.txt
	msgLangsLongRaw string
	MsgLangsLong    = strings.TrimSpace(msgLangsLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
