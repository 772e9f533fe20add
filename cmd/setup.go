package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/deeppath/deeppath-mcp/internal"
	"github.com/deeppath/deeppath-mcp/internal/config"
	"github.com/deeppath/deeppath-mcp/internal/hostconfig"
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	setupCmdAPIKey  string
	setupCmdBaseURL string
	setupCmdTarget  string
)

// overridden in tests
var (
	setupFs        = afero.NewOsFs()
	userHomeDir    = os.UserHomeDir
	executablePath = os.Executable
	setupGOOS      = runtime.GOOS
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Register the DeepPath MCP server with your MCP host",
	Long: "Adds (or replaces) the 'deeppath' entry under 'mcpServers' in the config file of the\n" +
		"VSCode Claude extension (Cline) and/or the Claude Desktop app.\n\n" +
		"Missing config files and directories are created, every other setting in an existing file is kept.\n" +
		"Values not supplied through flags are asked for interactively.\n" +
		"Restart the host application afterwards for the change to take effect.",
	Args: cobra.NoArgs,
	RunE: runSetup,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "4",
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupCmdAPIKey, "api-key", "", "your DeepPath API key")
	setupCmd.Flags().StringVar(
		&setupCmdBaseURL,
		"base-url",
		"",
		fmt.Sprintf("base URL of the DeepPath API (default %s)", config.BaseURLDefault),
	)
	setupCmd.Flags().StringVar(
		&setupCmdTarget,
		"target",
		"",
		fmt.Sprintf(
			"host application to configure ('%s' | '%s' | '%s')",
			types.HostTargetVSCode, types.HostTargetDesktop, types.HostTargetBoth,
		),
	)

	rootCmd.AddCommand(setupCmd)
}

// prompt prints the question and returns the trimmed answer.
// An exhausted input yields an empty answer.
func prompt(cmd *cobra.Command, r *bufio.Reader, question string) (string, error) {
	cmd.Print(question)
	answer, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func runSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("DeepPath MCP Server Setup")
	cmd.Println("========================")
	cmd.Println()

	apiKey := strings.TrimSpace(setupCmdAPIKey)
	if apiKey == "" {
		var err error
		apiKey, err = prompt(cmd, reader, "Enter your DeepPath API key: ")
		if err != nil {
			return err
		}
	}
	if apiKey == "" {
		return errors.New("API key is required, run `deeppath-mcp api-key` to get one")
	}
	if err := internal.ValidateAPIKey(apiKey); err != nil {
		if !errors.Is(err, internal.ErrAPIKeyTooShort) {
			return fmt.Errorf("invalid API key: %w", err)
		}
		cmd.Printf("Warning: %v, the DeepPath API will likely reject it\n", err)
	}

	baseURL := setupCmdBaseURL
	if baseURL == "" {
		var err error
		baseURL, err = prompt(
			cmd, reader, fmt.Sprintf("Enter the DeepPath base URL (default: %s): ", config.BaseURLDefault),
		)
		if err != nil {
			return err
		}
	}
	if baseURL == "" {
		baseURL = config.BaseURLDefault
	}
	baseURL, err := config.NormalizeBaseURL(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	targetInput := setupCmdTarget
	if targetInput == "" {
		targetInput, err = prompt(
			cmd,
			reader,
			"Which application do you want to configure? (1: VSCode Claude Extension, 2: Claude Desktop App, 3: Both): ",
		)
		if err != nil {
			return err
		}
	}
	target, err := types.ValidateHostTarget(strings.ToLower(targetInput))
	if err != nil {
		return err
	}

	home, err := userHomeDir()
	if err != nil {
		return fmt.Errorf("failed to determine the home directory: %w", err)
	}
	command, err := executablePath()
	if err != nil {
		return fmt.Errorf("failed to determine the path of this executable: %w", err)
	}

	entry := hostconfig.NewServerEntry(command, apiKey, baseURL)
	writer := hostconfig.NewWriter(setupFs)

	// keep going when one of the files fails, report the failure at the end
	var failed []string
	for _, path := range hostconfig.DefaultPaths(setupGOOS, home).For(target) {
		res, err := writer.Update(path, entry)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			failed = append(failed, path)
			continue
		}
		if res.Reset {
			cmd.Printf("Existing config at %s could not be parsed, a new configuration file was created\n", path)
		}
		cmd.Printf("Configuration updated successfully at: %s\n", path)
	}

	if len(failed) > 0 {
		return fmt.Errorf("setup failed for: %s", strings.Join(failed, ", "))
	}

	cmd.Println()
	cmd.Println("Setup completed successfully!")
	cmd.Printf("API key: %s\n", internal.MaskAPIKey(apiKey))
	cmd.Println("You may need to restart your application for the changes to take effect.")
	return nil
}
