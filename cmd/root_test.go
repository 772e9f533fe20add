package cmd

import (
	"testing"

	"github.com/deeppath/deeppath-mcp/pkg/testhelpers"
	"github.com/spf13/cobra"
)

func TestRootCommandStructure(t *testing.T) {
	testhelpers.AssertEqual(t, "deeppath-mcp", rootCmd.Use)
	testhelpers.AssertTrue(t, rootCmd.SilenceUsage, "root command should silence usage on errors")
	testhelpers.AssertNotNil(t, rootCmd.RunE)
	testhelpers.AssertTrue(t, rootCmd.Version != "", "root command should report a version")
}

func TestSetupCommandGroups(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	second := &cobra.Command{Use: "second", Annotations: map[string]string{"group": "advanced", "order": "2"}}
	first := &cobra.Command{Use: "first", Annotations: map[string]string{"group": "basic", "order": "1"}}
	last := &cobra.Command{Use: "last"}
	root.AddCommand(last, second, first)

	setupCommandGroups(root)

	cmds := root.Commands()
	testhelpers.AssertEqual(t, 3, len(cmds))
	testhelpers.AssertEqual(t, "first", cmds[0].Use)
	testhelpers.AssertEqual(t, "second", cmds[1].Use)
	testhelpers.AssertEqual(t, "last", cmds[2].Use)

	testhelpers.AssertEqual(t, "basic", first.GroupID)
	testhelpers.AssertEqual(t, "advanced", second.GroupID)
	testhelpers.AssertEqual(t, "", last.GroupID)
	testhelpers.AssertTrue(t, root.ContainsGroup("basic"), "basic group should be registered")
	testhelpers.AssertTrue(t, root.ContainsGroup("advanced"), "advanced group should be registered")

	// running it twice must not register the groups again
	setupCommandGroups(root)
	testhelpers.AssertEqual(t, 2, len(root.Groups()))
}

func TestSubcommandsAreRegistered(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		group subCommandGroup
		order string
	}{
		{startServerCmd, "start", subCommandGroupBasic, "1"},
		{listToolsCmd, "tools", subCommandGroupBasic, "2"},
		{usageCmd, "usage <name>", subCommandGroupBasic, "3"},
		{setupCmd, "setup", subCommandGroupBasic, "4"},
		{apiKeyCmd, "api-key", subCommandGroupBasic, "5"},
		{checkCmd, "check", subCommandGroupAdvanced, "6"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			testhelpers.AssertEqual(t, tt.use, tt.cmd.Use)
			testhelpers.AssertTrue(t, tt.cmd.Parent() == rootCmd, "command should be attached to the root command")
			testhelpers.AssertNotNil(t, tt.cmd.RunE)
			testhelpers.AssertTrue(t, len(tt.cmd.Short) > 0, "Short description should not be empty")
			testhelpers.TestCommandAnnotations(t, tt.cmd.Annotations, []testhelpers.CommandAnnotationTest{
				{Key: "group", Expected: string(tt.group)},
				{Key: "order", Expected: tt.order},
			})
		})
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		flags []string
	}{
		{startServerCmd, []string{"base-url", "strict", "metrics-port"}},
		{listToolsCmd, []string{"output"}},
		{setupCmd, []string{"api-key", "base-url", "target"}},
		{checkCmd, []string{"api-key", "base-url", "write", "timeout"}},
	}

	for _, tt := range tests {
		for _, name := range tt.flags {
			f := tt.cmd.Flags().Lookup(name)
			testhelpers.AssertNotNil(t, f)
			if f != nil {
				testhelpers.AssertTrue(t, len(f.Usage) > 0, name+" flag should have usage description")
			}
		}
	}
}
