// Package hostconfig writes the DeepPath MCP server entry into the config files of MCP host applications.
package hostconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deeppath/deeppath-mcp/internal/config"
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/spf13/afero"
)

// ServerKey is the key of the adapter's entry under "mcpServers".
const ServerKey = "deeppath"

// Paths holds the config file locations of the supported host applications.
type Paths struct {
	// VSCode is the MCP settings file of the Cline extension for VSCode.
	VSCode string
	// Desktop is the Claude desktop app config file.
	Desktop string
}

// DefaultPaths returns the host config locations for the given OS and home directory.
func DefaultPaths(goos, home string) Paths {
	var base string
	switch goos {
	case "darwin":
		base = filepath.Join(home, "Library", "Application Support")
	case "windows":
		base = filepath.Join(home, "AppData", "Roaming")
	default:
		base = filepath.Join(home, ".config")
	}

	return Paths{
		VSCode: filepath.Join(
			base, "Code", "User", "globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json",
		),
		Desktop: filepath.Join(base, "Claude", "claude_desktop_config.json"),
	}
}

// For returns the config files to update for a target, in a stable order.
func (p Paths) For(target types.HostTarget) []string {
	switch target {
	case types.HostTargetVSCode:
		return []string{p.VSCode}
	case types.HostTargetDesktop:
		return []string{p.Desktop}
	case types.HostTargetBoth:
		return []string{p.VSCode, p.Desktop}
	default:
		return nil
	}
}

// NewServerEntry builds the entry that makes a host application launch this binary over stdio.
func NewServerEntry(command, apiKey, baseURL string) types.HostServerEntry {
	return types.HostServerEntry{
		Command: command,
		Args:    []string{"start"},
		Env: map[string]string{
			config.APIKeyEnvVar:  apiKey,
			config.BaseURLEnvVar: baseURL,
		},
		Disabled:    false,
		AutoApprove: []string{},
	}
}

// UpdateResult describes what Update did to a config file.
type UpdateResult struct {
	Path string
	// Created is true when the file did not exist before.
	Created bool
	// Reset is true when the existing file could not be parsed and was replaced by a fresh config.
	Reset bool
}

// Writer updates host config files on a filesystem.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a Writer backed by fs. Pass afero.NewOsFs() for the real filesystem.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Update adds or replaces the "mcpServers.deeppath" entry of the config file at path.
// Missing directories and files are created; every other key of an existing file is preserved.
func (w *Writer) Update(path string, entry types.HostServerEntry) (*UpdateResult, error) {
	res := &UpdateResult{Path: path}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	config := map[string]any{}
	data, err := afero.ReadFile(w.fs, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.Created = true
	case err != nil:
		return nil, fmt.Errorf("failed to read existing config at %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &config); err != nil || config == nil {
			config = map[string]any{}
			res.Reset = true
		}
	}

	servers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		servers = map[string]any{}
	}
	servers[ServerKey] = entry
	config["mcpServers"] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config for %s: %w", path, err)
	}
	// the file carries the API key
	if err := afero.WriteFile(w.fs, path, out, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return res, nil
}
