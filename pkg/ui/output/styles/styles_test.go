package styles_test

import (
	"testing"

	"github.com/arthur-debert/rigup/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	expected := []string{
		"Header", "Section", "Bold", "Muted", "MutedItalic",
		"TaskName", "Detail", "FilePath", "Count", "Warning", "Error",
		"Applied", "AlreadyPresent", "NotApplicable", "Failed",
		"SuccessBadge", "ErrorBadge",
	}

	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			_, exists := styles.StyleRegistry[name]
			assert.True(t, exists, "style %s should exist in registry", name)
		})
	}
}

func TestLoadStylesFromData(t *testing.T) {
	original := styles.StyleRegistry
	t.Cleanup(func() { styles.StyleRegistry = original })

	data := []byte(`
colors:
  red: {light: "#ff0000", dark: "#ff5555"}
styles:
  Alert:
    bold: true
    foreground: red
`)
	require.NoError(t, styles.LoadStylesFromData(data))

	alert := styles.GetStyle("Alert")
	assert.True(t, alert.GetBold())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#ff0000", Dark: "#ff5555"}, alert.GetForeground())

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}

func TestGetStyleUnknown(t *testing.T) {
	assert.Equal(t, "plain", styles.GetStyle("NoSuchStyle").Render("plain"))
	assert.Equal(t, "plain", styles.Render("NoSuchStyle", "plain"))
}
