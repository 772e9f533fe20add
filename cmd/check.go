package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/deeppath/deeppath-mcp/client"
	"github.com/deeppath/deeppath-mcp/internal/config"
	"github.com/deeppath/deeppath-mcp/internal/smoketest"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	checkCmdAPIKey  string
	checkCmdBaseURL string
	checkCmdWrite   bool
	checkCmdTimeout time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the DeepPath API is reachable with your API key",
	Long: "Runs a smoke test against the DeepPath standard MCP API.\n\n" +
		"It lists the functions offered by the API and calls the read-only ones\n" +
		"(getProjectInfo, getTasks, getGoals, getNotes, getAutomations), reporting each result.\n" +
		"With --write it also creates a task, a goal and a note in your project and verifies them.",
	Args: cobra.NoArgs,
	RunE: runCheck,
	Annotations: map[string]string{
		"group": string(subCommandGroupAdvanced),
		"order": "6",
	},
}

func init() {
	checkCmd.Flags().StringVar(
		&checkCmdAPIKey,
		"api-key",
		"",
		fmt.Sprintf("DeepPath API key (defaults to env var %s or the file named by %s_FILE)", config.APIKeyEnvVar, config.APIKeyEnvVar),
	)
	checkCmd.Flags().StringVar(
		&checkCmdBaseURL,
		"base-url",
		"",
		fmt.Sprintf("base URL of the DeepPath API (defaults to env var %s, then %s)", config.BaseURLEnvVar, config.BaseURLDefault),
	)
	checkCmd.Flags().BoolVar(
		&checkCmdWrite,
		"write",
		false,
		"also run the checks that create a task, a goal and a note",
	)
	checkCmd.Flags().DurationVar(
		&checkCmdTimeout,
		"timeout",
		30*time.Second,
		"timeout of each request to the DeepPath API",
	)

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	apiKey := checkCmdAPIKey
	if apiKey == "" {
		key, err := config.LookupAPIKey()
		if err != nil {
			return err
		}
		apiKey = key
	}
	if apiKey == "" {
		return errors.New("an API key is required, pass --api-key or set " + config.APIKeyEnvVar)
	}

	baseURL := checkCmdBaseURL
	if baseURL == "" {
		baseURL = os.Getenv(config.BaseURLEnvVar)
	}
	if baseURL == "" {
		baseURL = config.BaseURLDefault
	}
	baseURL, err := config.NormalizeBaseURL(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	c := client.NewClient(baseURL, apiKey, &http.Client{Timeout: checkCmdTimeout})
	runner := smoketest.NewRunner(c, cmd.OutOrStdout())

	report, err := runner.Run(cmd.Context(), apiKey, checkCmdWrite)
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		cmd.Printf("%d of %d checks failed\n", report.Failed, report.Passed+report.Failed)
	}
	return nil
}
