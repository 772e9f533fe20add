package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func withOutputFormat(t *testing.T, format string) {
	t.Helper()
	listToolsCmdOutput = format
	t.Cleanup(func() { listToolsCmdOutput = outputFormatText })
}

func TestListToolsText(t *testing.T) {
	withOutputFormat(t, outputFormatText)
	c, out := newTestCommand("")

	require.NoError(t, runListTools(c, nil))
	assert.Contains(t, out.String(), "1. getProjectInfo\n")
	assert.Contains(t, out.String(), "17. getCurrentDateTime (local)\n")
}

func TestListToolsJSON(t *testing.T) {
	withOutputFormat(t, outputFormatJSON)
	c, out := newTestCommand("")

	require.NoError(t, runListTools(c, nil))

	var tools []toolSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &tools))
	require.Len(t, tools, 17)
	assert.Equal(t, "getProjectInfo", tools[0].Name)
	assert.Equal(t, "getCurrentDateTime", tools[16].Name)
	assert.True(t, tools[16].Local)
	assert.Equal(t, "object", tools[1].InputSchema["type"])
}

func TestListToolsYAML(t *testing.T) {
	withOutputFormat(t, outputFormatYAML)
	c, out := newTestCommand("")

	require.NoError(t, runListTools(c, nil))

	var tools []toolSummary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &tools))
	require.Len(t, tools, 17)
	assert.Equal(t, "getTasks", tools[1].Name)
	assert.False(t, tools[1].Local)
}

func TestListToolsUnsupportedFormat(t *testing.T) {
	withOutputFormat(t, "xml")
	c, _ := newTestCommand("")

	err := runListTools(c, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestToolUsage(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		contains []string
	}{
		{"required parameter", "getTask", []string{"getTask", "taskId (required)", `"type": "string"`}},
		{"no parameters", "getProjectInfo", []string{"This tool does not require any input parameters."}},
		{"local tool", "getCurrentDateTime", []string{"never contacts the DeepPath API", "format (optional)", `"iso"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCommand("")
			require.NoError(t, runGetToolUsage(c, []string{tt.tool}))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestToolUsageUnknownTool(t *testing.T) {
	c, _ := newTestCommand("")
	err := runGetToolUsage(c, []string{"noSuchTool"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool 'noSuchTool' not found")
}

func TestAPIKeyCommand(t *testing.T) {
	orig := openBrowser
	t.Cleanup(func() { openBrowser = orig })

	t.Run("browser opens", func(t *testing.T) {
		var opened string
		openBrowser = func(url string) error {
			opened = url
			return nil
		}
		c, out := newTestCommand("")

		require.NoError(t, runAPIKey(c, nil))
		assert.Equal(t, APIKeySettingsURL, opened)
		assert.Contains(t, out.String(), "Browser should open automatically")
		assert.Contains(t, out.String(), APIKeySettingsURL)
	})

	t.Run("browser fails", func(t *testing.T) {
		openBrowser = func(string) error { return errors.New("no display") }
		c, out := newTestCommand("")

		require.NoError(t, runAPIKey(c, nil))
		assert.Contains(t, out.String(), "Failed to open browser automatically (no display)")
		assert.Contains(t, out.String(), APIKeySettingsURL)
	})
}
