// Package smoketest exercises a live DeepPath API through the standard MCP endpoint.
package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/deeppath/deeppath-mcp/client"
	"github.com/deeppath/deeppath-mcp/internal"
)

// Check is a single named step of the smoke test.
type Check struct {
	Name string
	Run  func(ctx context.Context) (any, error)
}

// Report summarizes a smoke test run.
type Report struct {
	Functions int
	Passed    int
	Failed    int
}

// Runner runs the smoke test against one DeepPath API.
type Runner struct {
	client *client.Client
	out    io.Writer
	now    func() time.Time
}

// NewRunner creates a Runner that prints its progress to out.
func NewRunner(c *client.Client, out io.Writer) *Runner {
	return &Runner{client: c, out: out, now: time.Now}
}

// Run lists the remote functions and then runs every check.
// Read-only checks always run; write checks create a task, a goal and a note and verify them.
// An error is returned only when the function listing fails, individual check failures are reported.
func (r *Runner) Run(ctx context.Context, apiKey string, write bool) (*Report, error) {
	fmt.Fprintln(r.out, "===== DeepPath standard MCP API check =====")
	fmt.Fprintf(r.out, "API URL: %s\n", r.client.Endpoint())
	fmt.Fprintf(r.out, "API Key: %s\n", internal.MaskAPIKey(apiKey))
	fmt.Fprintln(r.out, "===========================================")
	fmt.Fprintln(r.out)

	functions, err := r.client.ListFunctions(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "✗ list available functions: %v\n", err)
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}

	report := &Report{Functions: len(functions)}
	fmt.Fprintln(r.out, "✓ list available functions")
	fmt.Fprintf(r.out, "found %d functions:\n", len(functions))
	for _, f := range functions {
		fmt.Fprintf(r.out, "  - %s: %s\n", f.Name, f.Description)
	}
	fmt.Fprintln(r.out)

	checks := r.readChecks()
	if write {
		checks = append(checks, r.writeChecks()...)
	}

	for _, c := range checks {
		fmt.Fprintf(r.out, "check: %s\n", c.Name)
		result, err := c.Run(ctx)
		if err != nil {
			report.Failed++
			fmt.Fprintf(r.out, "✗ failed: %v\n\n", err)
			continue
		}
		report.Passed++
		fmt.Fprintln(r.out, "✓ ok")
		if j, err := json.MarshalIndent(result, "", "  "); err == nil {
			fmt.Fprintf(r.out, "result: %s\n", j)
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "===== done: %d passed, %d failed =====\n", report.Passed, report.Failed)
	return report, nil
}

func (r *Runner) call(ctx context.Context, name string, params map[string]any) (map[string]any, error) {
	raw, err := r.client.CallFunction(ctx, name, params)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", name, err)
	}
	return out, nil
}

func (r *Runner) callCheck(name string, params map[string]any) Check {
	return Check{
		Name: name,
		Run: func(ctx context.Context) (any, error) {
			return r.call(ctx, name, params)
		},
	}
}

func (r *Runner) readChecks() []Check {
	return []Check{
		r.callCheck("getProjectInfo", map[string]any{}),
		r.callCheck("getTasks", map[string]any{"status": "all", "limit": 10}),
		r.callCheck("getGoals", map[string]any{"includeCompleted": false}),
		r.callCheck("getNotes", map[string]any{"limit": 10}),
		r.callCheck("getAutomations", map[string]any{}),
	}
}

func (r *Runner) writeChecks() []Check {
	return []Check{
		{Name: "create and verify task", Run: r.createAndVerifyTask},
		{Name: "create and verify goal", Run: r.createAndVerifyGoal},
		{Name: "create and verify note", Run: r.createAndVerifyNote},
	}
}

func (r *Runner) uniqueTitle(kind string) string {
	return fmt.Sprintf("check %s %s", kind, r.now().UTC().Format(time.RFC3339Nano))
}

func (r *Runner) createAndVerifyTask(ctx context.Context) (any, error) {
	title := r.uniqueTitle("task")
	created, err := r.call(ctx, "createTask", map[string]any{
		"title":       title,
		"description": "created by deeppath-mcp check",
	})
	if err != nil {
		return nil, err
	}

	task, _ := created["task"].(map[string]any)
	taskID, _ := task["id"].(string)
	if created["success"] != true || taskID == "" {
		return nil, fmt.Errorf("createTask did not return a task id")
	}

	got, err := r.call(ctx, "getTask", map[string]any{"taskId": taskID})
	if err != nil {
		return nil, err
	}
	gotTask, _ := got["task"].(map[string]any)
	if gotTask["title"] != title {
		return nil, fmt.Errorf("task title mismatch: expected %q, got %v", title, gotTask["title"])
	}
	return map[string]any{"taskId": taskID, "verified": true}, nil
}

func (r *Runner) createAndVerifyGoal(ctx context.Context) (any, error) {
	title := r.uniqueTitle("goal")
	created, err := r.call(ctx, "createGoal", map[string]any{
		"title":       title,
		"description": "created by deeppath-mcp check",
		"isMainGoal":  false,
	})
	if err != nil {
		return nil, err
	}
	if created["success"] != true {
		return nil, fmt.Errorf("createGoal did not succeed")
	}

	list, err := r.call(ctx, "getGoals", map[string]any{"includeCompleted": false})
	if err != nil {
		return nil, err
	}
	if !containsTitle(list["goals"], title) {
		return nil, fmt.Errorf("created goal %q not found in goal list", title)
	}
	return map[string]any{"title": title, "verified": true}, nil
}

func (r *Runner) createAndVerifyNote(ctx context.Context) (any, error) {
	title := r.uniqueTitle("note")
	created, err := r.call(ctx, "createNote", map[string]any{
		"title":   title,
		"content": "created by deeppath-mcp check",
	})
	if err != nil {
		return nil, err
	}
	if created["success"] != true {
		return nil, fmt.Errorf("createNote did not succeed")
	}

	list, err := r.call(ctx, "getNotes", map[string]any{"limit": 10})
	if err != nil {
		return nil, err
	}
	if !containsTitle(list["notes"], title) {
		return nil, fmt.Errorf("created note %q not found in note list", title)
	}
	return map[string]any{"title": title, "verified": true}, nil
}

// containsTitle reports whether items is a JSON array holding an object with the given title.
func containsTitle(items any, title string) bool {
	list, _ := items.([]any)
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok && obj["title"] == title {
			return true
		}
	}
	return false
}
