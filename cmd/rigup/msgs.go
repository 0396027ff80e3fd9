package rigup

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Idempotent Ubuntu workstation provisioning"
	MsgUpShort         = "Install everything the catalog describes"
	MsgStatusShort     = "Show what a run would do, without changing anything"
	MsgCatalogShort    = "Show the task catalog"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/rigup/config.toml)"
	MsgFlagCatalog = "Catalog file (TOML or YAML), built-in workstation catalog when empty"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagStrict  = "Exit 1 when any task fails, not only prerequisites"
	MsgFlagOnly    = "Run only these tasks (comma-separated names)"
	MsgFlagSkip    = "Leave out these tasks (comma-separated names)"

	// Run notes shown under the summary
	MsgNotePrerequisite = "Stopped: prerequisite %q failed, later tasks were not attempted."
	MsgNoteInterrupted  = "Interrupted: %d task(s) were not attempted."
	MsgNoteStrict       = "%d task(s) failed and --strict is set."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/up-long.txt
	msgUpLongRaw string
	MsgUpLong    = strings.TrimSpace(msgUpLongRaw)

	//go:embed msgs/up-example.txt
	msgUpExampleRaw string
	MsgUpExample    = strings.TrimRight(msgUpExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/catalog-long.txt
	msgCatalogLongRaw string
	MsgCatalogLong    = strings.TrimSpace(msgCatalogLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
