package cmd

import (
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
)

// APIKeySettingsURL is the DeepPath page where API keys are created.
const APIKeySettingsURL = "https://app.deeppath.ai/settings/api-keys"

// openBrowser opens url in the default browser. Overridden in tests.
var openBrowser = func(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	return c.Start()
}

var apiKeyCmd = &cobra.Command{
	Use:   "api-key",
	Short: "Open the DeepPath page to create an API key",
	Args:  cobra.NoArgs,
	RunE:  runAPIKey,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "5",
	},
}

func init() {
	rootCmd.AddCommand(apiKeyCmd)
}

func runAPIKey(cmd *cobra.Command, args []string) error {
	cmd.Println("Opening DeepPath project settings page...")
	cmd.Println("Please follow these steps:")
	cmd.Println("1. Log in to your DeepPath account if needed")
	cmd.Println("2. Navigate to Project Settings")
	cmd.Println("3. Create a new API key or copy an existing one")
	cmd.Println("4. Use this API key in your MCP server configuration (see `deeppath-mcp setup`)")
	cmd.Println()

	if err := openBrowser(APIKeySettingsURL); err != nil {
		cmd.Printf("Failed to open browser automatically (%v). Please visit:\n", err)
		cmd.Println(APIKeySettingsURL)
		return nil
	}

	cmd.Println("Browser should open automatically. If not, please visit:")
	cmd.Println(APIKeySettingsURL)
	return nil
}
