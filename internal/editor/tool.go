package editor

import "strings"

// Tool is the active pointer mode.
type Tool int

const (
	ToolSelect Tool = iota
	ToolDraw
	ToolDelete
	ToolStretch
	ToolMove
	ToolExtend
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolDraw, ToolDelete, ToolStretch, ToolMove, ToolExtend}

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolDraw:
		return "draw"
	case ToolDelete:
		return "delete"
	case ToolStretch:
		return "stretch"
	case ToolMove:
		return "move"
	case ToolExtend:
		return "extend"
	default:
		return "unknown"
	}
}

// Shortcut is the key that selects t.
func (t Tool) Shortcut() string {
	switch t {
	case ToolSelect:
		return "v"
	case ToolDraw:
		return "d"
	case ToolDelete:
		return "x"
	case ToolStretch:
		return "s"
	case ToolMove:
		return "m"
	case ToolExtend:
		return "t"
	default:
		return ""
	}
}

// ParseTool maps a tool name back to its Tool.
func ParseTool(name string) (Tool, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Tools {
		if t.String() == name {
			return t, true
		}
	}
	return ToolSelect, false
}

// ToolForKey returns the tool bound to key. Matching ignores case, so "V"
// and "v" both select. The Delete key only switches to the delete tool.
func ToolForKey(key string) (Tool, bool) {
	switch strings.ToLower(key) {
	case "v":
		return ToolSelect, true
	case "d":
		return ToolDraw, true
	case "x", "delete":
		return ToolDelete, true
	case "s":
		return ToolStretch, true
	case "t":
		return ToolExtend, true
	case "m":
		return ToolMove, true
	}
	return ToolSelect, false
}
