package mcp

import (
	"encoding/json"
	"time"

	"github.com/deeppath/deeppath-mcp/pkg/types"
)

// DateTimeFormat selects how getCurrentDateTime renders the current time.
type DateTimeFormat string

const (
	DateTimeFormatISO   DateTimeFormat = "iso"
	DateTimeFormatShort DateTimeFormat = "short"
	DateTimeFormatFull  DateTimeFormat = "full"
)

const (
	// ISOLayout is ISO-8601 in UTC with millisecond precision, eg- 2025-03-14T09:26:53.589Z
	ISOLayout   = "2006-01-02T15:04:05.000Z07:00"
	shortLayout = "1/2/2006, 3:04 PM"
	fullLayout  = "Monday, January 2, 2006 at 3:04:05 PM MST"
)

// DateTimeResult is the body returned by getCurrentDateTime.
type DateTimeResult struct {
	Formatted string         `json:"formatted"`
	Timestamp int64          `json:"timestamp"`
	Format    DateTimeFormat `json:"format"`
}

// ParseDateTimeFormat maps a format selector onto one of the supported formats.
// The long aliases are accepted too. Anything else, including an empty value, selects iso.
func ParseDateTimeFormat(v any) DateTimeFormat {
	s, _ := v.(string)
	switch s {
	case "short", "locale-short":
		return DateTimeFormatShort
	case "full", "locale-full":
		return DateTimeFormatFull
	default:
		return DateTimeFormatISO
	}
}

// FormatDateTime renders t in the given format.
// iso is always UTC; the locale formats use t's own location.
func FormatDateTime(t time.Time, f DateTimeFormat) string {
	switch f {
	case DateTimeFormatShort:
		return t.Format(shortLayout)
	case DateTimeFormatFull:
		return t.Format(fullLayout)
	default:
		return t.UTC().Format(ISOLayout)
	}
}

// currentDateTime computes getCurrentDateTime without any network call.
func (m *MCPService) currentDateTime(args map[string]any) *types.ToolResult {
	// truncate so that the formatted string and the millisecond timestamp describe the same instant
	now := m.now().Truncate(time.Millisecond)
	f := ParseDateTimeFormat(args["format"])

	body, err := json.MarshalIndent(DateTimeResult{
		Formatted: FormatDateTime(now, f),
		Timestamp: now.UnixMilli(),
		Format:    f,
	}, "", "  ")
	if err != nil {
		return types.NewErrorResult("failed to format current date and time: " + err.Error())
	}
	return types.NewTextResult(string(body))
}
