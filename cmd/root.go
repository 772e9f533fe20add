// Package cmd implements the deeppath-mcp command line interface.
package cmd

import (
	"context"
	"sort"
	"strconv"

	"github.com/deeppath/deeppath-mcp/pkg/version"
	"github.com/spf13/cobra"
)

type subCommandGroup string

const (
	subCommandGroupBasic    subCommandGroup = "basic"
	subCommandGroupAdvanced subCommandGroup = "advanced"
)

var rootCmd = &cobra.Command{
	Use:   "deeppath-mcp",
	Short: "DeepPath MCP server",
	Long: "deeppath-mcp exposes your DeepPath project (tasks, goals, notes, automations and calendar)\n" +
		"as MCP tools over stdio.\n\n" +
		"Running it without a subcommand is the same as running `deeppath-mcp start`.\n" +
		"The DEEPPATH_API_KEY environment variable is required, DEEPPATH_BASE_URL defaults to http://localhost:3000.",
	SilenceUsage: true,
	// the host applications launch the binary without arguments
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStartServer(cmd, args)
	},
}

func init() {
	rootCmd.Version = version.GetVersion()
}

// Execute runs the root command.
func Execute() error {
	setupCommandGroups(rootCmd)
	return rootCmd.ExecuteContext(context.Background())
}

// setupCommandGroups orders the subcommands by their "order" annotation and files them
// under the help group named by their "group" annotation.
func setupCommandGroups(root *cobra.Command) {
	if root.ContainsGroup(string(subCommandGroupBasic)) {
		return
	}
	root.AddGroup(
		&cobra.Group{ID: string(subCommandGroupBasic), Title: "Basic Commands:"},
		&cobra.Group{ID: string(subCommandGroupAdvanced), Title: "Advanced Commands:"},
	)

	cmds := append([]*cobra.Command(nil), root.Commands()...)
	sort.SliceStable(cmds, func(i, j int) bool {
		return commandOrder(cmds[i]) < commandOrder(cmds[j])
	})

	cobra.EnableCommandSorting = false
	root.RemoveCommand(cmds...)
	for _, c := range cmds {
		if g, ok := c.Annotations["group"]; ok {
			c.GroupID = g
		}
		root.AddCommand(c)
	}
}

func commandOrder(c *cobra.Command) int {
	order, err := strconv.Atoi(c.Annotations["order"])
	if err != nil {
		return 1 << 20
	}
	return order
}
