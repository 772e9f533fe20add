package types

import "fmt"

// HostTarget identifies which host application(s) the setup command configures.
type HostTarget string

const (
	HostTargetVSCode  HostTarget = "vscode"
	HostTargetDesktop HostTarget = "desktop"
	HostTargetBoth    HostTarget = "both"
)

// ServerMetadata represents the server metadata response
type ServerMetadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HostServerEntry is the entry written under "mcpServers.deeppath" in a host application's config file.
type HostServerEntry struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env"`
	Disabled    bool              `json:"disabled"`
	AutoApprove []string          `json:"autoApprove"`
}

// ValidateHostTarget validates the input string and returns the corresponding HostTarget.
// Besides the names, the numeric choices offered by the interactive prompt (1, 2, 3) are accepted.
func ValidateHostTarget(input string) (HostTarget, error) {
	errMsgExt := fmt.Sprintf(
		"(acceptable values: '%s', '%s', '%s')", HostTargetVSCode, HostTargetDesktop, HostTargetBoth,
	)

	switch input {
	case string(HostTargetVSCode), "1":
		return HostTargetVSCode, nil
	case string(HostTargetDesktop), "2":
		return HostTargetDesktop, nil
	case string(HostTargetBoth), "3":
		return HostTargetBoth, nil
	case "":
		return "", fmt.Errorf("target is required %s", errMsgExt)
	default:
		return "", fmt.Errorf("unsupported target: %s %s", input, errMsgExt)
	}
}
