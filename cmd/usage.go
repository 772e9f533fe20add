package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage <name>",
	Short: "Get usage information for a MCP tool",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetToolUsage,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "3",
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}

func runGetToolUsage(cmd *cobra.Command, args []string) error {
	t, ok := registry.Get(args[0])
	if !ok {
		return fmt.Errorf("tool '%s' not found, run 'tools' to list the available tools", args[0])
	}

	cmd.Println(t.Name)
	cmd.Println(t.Description)
	if t.Local {
		cmd.Println("This tool is answered locally and never contacts the DeepPath API.")
	}

	if len(t.Params) == 0 {
		cmd.Println("This tool does not require any input parameters.")
		return nil
	}

	properties := registry.JSONSchema(t)["properties"].(map[string]any)

	cmd.Println()
	cmd.Println("Input Parameters:")
	for _, p := range t.Params {
		requiredOrOptional := "optional"
		if p.Required {
			requiredOrOptional = "required"
		}

		boundary := strings.Repeat("=", len(p.Name)+len(requiredOrOptional)+20)

		cmd.Println(boundary)
		cmd.Printf("%s (%s)\n", p.Name, requiredOrOptional)

		j, err := json.MarshalIndent(properties[p.Name], "", "  ")
		if err != nil {
			// Simply print the raw object if we fail to marshal it
			cmd.Println(properties[p.Name])
		} else {
			cmd.Println(string(j))
		}
		cmd.Println(boundary)

		cmd.Println()
	}

	return nil
}
