package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
)

var listToolsCmdOutput string

var listToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools exposed by the server",
	Long: "Lists every tool the DeepPath MCP server advertises to MCP hosts, in the order they are advertised.\n" +
		"This command does not contact the DeepPath API.",
	Args: cobra.NoArgs,
	RunE: runListTools,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "2",
	},
}

func init() {
	listToolsCmd.Flags().StringVarP(
		&listToolsCmdOutput,
		"output",
		"o",
		outputFormatText,
		fmt.Sprintf("output format (%s | %s | %s)", outputFormatText, outputFormatJSON, outputFormatYAML),
	)

	rootCmd.AddCommand(listToolsCmd)
}

// toolSummary is the serialized form of a tool in the json & yaml output.
type toolSummary struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Local       bool           `json:"local" yaml:"local"`
	InputSchema map[string]any `json:"inputSchema" yaml:"inputSchema"`
}

func summarize(tools []types.ToolDescriptor) []toolSummary {
	out := make([]toolSummary, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolSummary{
			Name:        t.Name,
			Description: t.Description,
			Local:       t.Local,
			InputSchema: registry.JSONSchema(t),
		})
	}
	return out
}

func runListTools(cmd *cobra.Command, args []string) error {
	tools := registry.ListTools()

	switch listToolsCmdOutput {
	case outputFormatJSON:
		j, err := json.MarshalIndent(summarize(tools), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tools: %w", err)
		}
		cmd.Println(string(j))
	case outputFormatYAML:
		y, err := yaml.Marshal(summarize(tools))
		if err != nil {
			return fmt.Errorf("failed to marshal tools: %w", err)
		}
		cmd.Print(string(y))
	case outputFormatText:
		for i, t := range tools {
			suffix := ""
			if t.Local {
				suffix = " (local)"
			}
			cmd.Printf("%d. %s%s\n", i+1, t.Name, suffix)
			cmd.Println(t.Description)
			cmd.Println()
		}
		cmd.Println("Run 'usage <tool name>' to see a tool's input parameters.")
	default:
		return fmt.Errorf(
			"unsupported output format: %s (acceptable values: '%s', '%s', '%s')",
			listToolsCmdOutput, outputFormatText, outputFormatJSON, outputFormatYAML,
		)
	}
	return nil
}
