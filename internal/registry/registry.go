// Package registry holds the static catalog of tools exposed by the DeepPath MCP adapter.
package registry

import (
	"fmt"
	"slices"

	"github.com/deeppath/deeppath-mcp/pkg/types"
)

// CurrentDateTimeTool is the name of the only tool computed locally instead of being forwarded.
const CurrentDateTimeTool = "getCurrentDateTime"

// Status values accepted by the DeepPath API.
var (
	taskListStatuses = []string{"all", "active", "completed"}
	itemStatuses     = []string{"active", "completed"}
)

// DateTimeFormats are the accepted values of getCurrentDateTime's format parameter.
var DateTimeFormats = []string{"iso", "short", "full"}

func str(name, desc string, required bool, enum ...string) types.ToolParam {
	return types.ToolParam{Name: name, Type: types.ParamString, Description: desc, Required: required, Enum: enum}
}

func num(name, desc string) types.ToolParam {
	return types.ToolParam{Name: name, Type: types.ParamNumber, Description: desc}
}

func boolean(name, desc string) types.ToolParam {
	return types.ToolParam{Name: name, Type: types.ParamBoolean, Description: desc}
}

// tools is the ordered catalog. It must track the functions the DeepPath API accepts.
var tools = []types.ToolDescriptor{
	{
		Name:        "getProjectInfo",
		Description: "Get information about the current project",
	},
	{
		Name:        "getTasks",
		Description: "Get a list of tasks",
		Params: []types.ToolParam{
			str("status", "Filter tasks by status (all, active, completed)", false, taskListStatuses...),
			num("limit", "Maximum number of tasks to return"),
		},
	},
	{
		Name:        "getTask",
		Description: "Get details of a specific task",
		Params: []types.ToolParam{
			str("taskId", "ID of the task to retrieve", true),
		},
	},
	{
		Name:        "createTask",
		Description: "Create a new task",
		Params: []types.ToolParam{
			str("title", "Title of the task", true),
			str("description", "Description of the task", false),
		},
	},
	{
		Name:        "updateTask",
		Description: "Update an existing task",
		Params: []types.ToolParam{
			str("taskId", "ID of the task to update", true),
			str("title", "New title for the task", false),
			str("description", "New description for the task", false),
			str("status", "New status for the task", false, itemStatuses...),
		},
	},
	{
		Name:        "getGoals",
		Description: "Get a list of goals",
		Params: []types.ToolParam{
			boolean("includeCompleted", "Whether to include completed goals"),
		},
	},
	{
		Name:        "createGoal",
		Description: "Create a new goal",
		Params: []types.ToolParam{
			str("title", "Title of the goal", true),
			str("description", "Description of the goal", false),
			boolean("isMainGoal", "Whether this is a main goal"),
		},
	},
	{
		Name:        "updateGoal",
		Description: "Update an existing goal",
		Params: []types.ToolParam{
			str("goalId", "ID of the goal to update", true),
			str("title", "New title for the goal", false),
			str("description", "New description for the goal", false),
			str("status", "New status for the goal", false, itemStatuses...),
			num("progress", "Progress percentage (0-100)"),
		},
	},
	{
		Name:        "getNotes",
		Description: "Get a list of notes",
		Params: []types.ToolParam{
			num("limit", "Maximum number of notes to return"),
		},
	},
	{
		Name:        "createNote",
		Description: "Create a new note",
		Params: []types.ToolParam{
			str("title", "Title of the note", true),
			str("content", "Content of the note", true),
		},
	},
	{
		Name:        "updateNote",
		Description: "Update an existing note",
		Params: []types.ToolParam{
			str("noteId", "ID of the note to update", true),
			str("title", "New title for the note", false),
			str("content", "New content for the note", false),
		},
	},
	{
		Name:        "deleteNote",
		Description: "Delete a note",
		Params: []types.ToolParam{
			str("noteId", "ID of the note to delete", true),
		},
	},
	{
		Name:        "deleteTask",
		Description: "Delete a task",
		Params: []types.ToolParam{
			str("taskId", "ID of the task to delete", true),
		},
	},
	{
		Name:        "deleteGoal",
		Description: "Delete a goal",
		Params: []types.ToolParam{
			str("goalId", "ID of the goal to delete", true),
		},
	},
	{
		Name:        "getIcsLink",
		Description: "Get ICS calendar link for the project",
	},
	{
		Name:        "getAutomations",
		Description: "Get a list of automation rules",
	},
	{
		Name:        CurrentDateTimeTool,
		Description: "Get the current date and time, together with its epoch timestamp in milliseconds",
		Params: []types.ToolParam{
			str("format", "Output format (iso, short, full). Defaults to iso", false, DateTimeFormats...),
		},
		Local: true,
	},
}

// index maps tool names to their position in tools.
var index = func() map[string]int {
	m := make(map[string]int, len(tools))
	for i, t := range tools {
		if _, dup := m[t.Name]; dup {
			panic(fmt.Sprintf("duplicate tool name in registry: %s", t.Name))
		}
		m[t.Name] = i
	}
	return m
}()

// ListTools returns every tool descriptor in catalog order.
// The returned slice is a copy and may be modified by the caller.
func ListTools() []types.ToolDescriptor {
	out := make([]types.ToolDescriptor, len(tools))
	for i, t := range tools {
		out[i] = clone(t)
	}
	return out
}

// Get looks up a tool descriptor by name.
func Get(name string) (types.ToolDescriptor, bool) {
	i, ok := index[name]
	if !ok {
		return types.ToolDescriptor{}, false
	}
	return clone(tools[i]), true
}

// IsLocal reports whether the named tool is computed in-process.
func IsLocal(name string) bool {
	i, ok := index[name]
	return ok && tools[i].Local
}

func clone(t types.ToolDescriptor) types.ToolDescriptor {
	t.Params = slices.Clone(t.Params)
	for i := range t.Params {
		t.Params[i].Enum = slices.Clone(t.Params[i].Enum)
	}
	return t
}
