// Package markdown renders markdown documents, such as the catalog listing
// and help topics, through glamour on terminals and as raw markdown
// elsewhere.
package markdown

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/rigup/pkg/catalog"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal output
type Renderer struct {
	Style string // "dark", "light", "notty", "auto", or path to a custom style
	Width int    // word wrap, 0 for glamour's default

	// Raw returns markdown untouched
	Raw bool
}

// New returns a renderer suited to format. Only terminal output is styled.
func New(format ui.Format) *Renderer {
	return &Renderer{Style: "auto", Raw: format != ui.FormatTerminal}
}

// Markdown renders content, falling back to the raw text on any error
func (r *Renderer) Markdown(content string) string {
	if r.Raw {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	logger := logging.GetLogger("markdown")
	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("Falling back to raw markdown")
		return content
	}
	rendered, err := tr.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("Falling back to raw markdown")
		return content
	}
	return rendered
}

// Render renders content when format is ".md" and returns anything else
// unchanged
func (r *Renderer) Render(content, format string) string {
	if format != ".md" {
		return content
	}
	return r.Markdown(content)
}

// Catalog lists every entry of c as a markdown table
func Catalog(c *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("# Catalog\n\n")
	fmt.Fprintf(&b, "Source: %s, %d tasks, run in this order.\n\n", c.Source, len(c.Entries))
	b.WriteString("| # | Task | Detected by | Installed with | Applies when |\n")
	b.WriteString("|---|------|-------------|----------------|--------------|\n")

	for i, e := range c.Entries {
		name := "**" + cell(e.Name) + "**"
		var flags []string
		if e.Prerequisite {
			flags = append(flags, "prerequisite")
		}
		if e.Privileged || len(e.Action.Apt) > 0 {
			flags = append(flags, "sudo")
		}
		if len(flags) > 0 {
			name += " _(" + strings.Join(flags, ", ") + ")_"
		}

		guard := e.GuardSummary()
		if guard == "" {
			guard = "always"
		}

		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			i+1, name, cell(e.ProbeSummary()), cell(e.ActionSummary()), cell(guard))
	}
	return b.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
