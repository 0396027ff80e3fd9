package rigup

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// styledHelp is decided once; help output always goes to stdout
var styledHelp = ui.DetectFormat(os.Stdout) == ui.FormatTerminal

func formatBold(s string) string {
	if !styledHelp {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds the helpers used by the usage template
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}
