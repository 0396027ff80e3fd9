package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpFS() fstest.MapFS {
	return fstest.MapFS{
		"catalog.md":          {Data: []byte("# Catalog format\n\nTasks are listed in order.")},
		"option-strict.txt":   {Data: []byte("Strict mode help")},
		"exit-codes.txt":      {Data: []byte("EXIT CODES\n0 success")},
		"advanced/guards.txt": {Data: []byte("Guard help")},
		"notes.json":          {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(helpFS())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"catalog", "exit-codes", "guards", "option-strict"}, tm.ListTopics())

		topic, ok := tm.GetTopic("guards")
		require.True(t, ok)
		assert.Equal(t, "Guard help", topic.Content)
		assert.Equal(t, "advanced/guards.txt", topic.FilePath)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(helpFS(), Options{Extensions: []string{".json"}})
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic(t *testing.T) {
	tm := New(helpFS())
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"catalog", "catalog", true},
		{"option-strict", "option-strict", true},
		{"strict", "option-strict", true},
		{"--strict", "option-strict", true},
		{"-strict", "option-strict", true},
		{"-s", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	if format != ".md" {
		return content
	}
	return strings.ToUpper(content)
}

func newRoot(t *testing.T, opts Options) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "rigup", Short: "Provision a workstation"}
	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run the catalog",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	require.NoError(t, InitializeWithOptions(root, helpFS(), opts))
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"plain topic", []string{"help", "exit-codes"}, []string{"EXIT CODES"}},
		{"rendered markdown topic", []string{"help", "catalog"}, []string{"# CATALOG FORMAT"}},
		{"flag topic", []string{"help", "--strict"}, []string{"Strict mode help"}},
		{"topic list", []string{"help", "topics"}, []string{"General topics:", "  catalog", "Option topics:", "  --strict", "Use 'rigup help <topic>'"}},
		{"command help", []string{"help", "up"}, []string{"Run the catalog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newRoot(t, Options{Renderer: upperRenderer{}})
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())

			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestHelpCommandReplacesDefault(t *testing.T) {
	root, _ := newRoot(t, Options{})
	root.InitDefaultHelpCmd()

	helpCmd, _, err := root.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}
