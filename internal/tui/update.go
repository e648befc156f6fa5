package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"wallsketch/internal/editor"
	"wallsketch/internal/history"
	"wallsketch/internal/logging"
	"wallsketch/internal/plan"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case fileChangedMsg:
		m.reload(msg.path)
		return m, waitForChange(m.watcher)
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		logging.L().Warn("watch", "err", msg.err)
		return m, waitForChange(m.watcher)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			switch msg.String() {
			case "esc", "i":
				m.showAttrs = false
				m.tbl.Blur()
				return m, nil
			case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "ctrl+z":
			m.step("undo", m.history.Undo)
		case "ctrl+y", "ctrl+r":
			m.step("redo", m.history.Redo)
		case "[":
			m.nudgeThickness(-1)
		case "]":
			m.nudgeThickness(1)
		case "{":
			m.nudgeThickness(-10)
		case "}":
			m.nudgeThickness(10)
		case "g":
			st := m.editor.State()
			m.editor.SetSnap(!st.Settings.Snap)
			m.status = fmt.Sprintf("snap: %v", !st.Settings.Snap)
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
			return m, nil
		case "i":
			m.showAttrs = true
			m.refreshAttrsFromCurrent()
			m.tbl.Focus()
			m.status = "inspector: " + m.editor.Plan().Summary()
		case "y":
			data, err := plan.Encode(m.editor.Plan())
			if err != nil {
				m.status = "copy error: " + err.Error()
				break
			}
			if err := writeClipboard(string(data)); err != nil {
				m.status = "clipboard error: " + err.Error()
				break
			}
			m.status = fmt.Sprintf("copied plan JSON (%d bytes)", len(data))
		case "ctrl+s":
			m.save()
		case "e":
			m.exportPNG()
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					if cmd := m.loadPath(it.path); cmd != nil {
						return m, cmd
					}
				}
			}
		default:
			before := m.editor.State().Tool
			if m.editor.Handle(editor.KeyPress{Key: msg.String()}) {
				m.afterCommit()
			}
			if t := m.editor.State().Tool; t != before {
				m.status = "tool: " + t.String()
			}
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		polys, err := plan.WKTWalls(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.commit(m.editor.Plan().AppendWall(polys...))
		m.afterCommit()
		m.status = fmt.Sprintf("pasted %d walls", len(polys))
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateMouse turns left-button activity over the canvas into pointer
// events. Once a press lands on the canvas, motion and release outside it
// are clamped to the edge so the drag still ends.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	inside := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH
	if !inside && !m.pressed {
		m.hovering = false
		return
	}
	cx = clamp(cx, 0, lay.mapW-1)
	cy = clamp(cy, 0, lay.mapH-1)
	at, ok := m.cellToDocument(cx, cy, lay.mapW, lay.mapH)
	if !ok {
		return
	}
	m.hovering = true
	m.pointer = at

	var ev editor.Event
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pressed = true
		ev = editor.PointerDown{At: at}
	case tea.MouseActionMotion:
		ev = editor.PointerMove{At: at}
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		ev = editor.PointerUp{At: at}
	default:
		return
	}
	if m.editor.Handle(ev) {
		m.afterCommit()
	}
}

func (m *Model) afterCommit() {
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
	m.status = "edited: " + m.editor.Plan().Summary()
}

func (m *Model) step(name string, move func() error) {
	if err := move(); err != nil {
		if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
			m.status = name + ": " + err.Error()
			return
		}
		m.status = name + " error: " + err.Error()
		return
	}
	m.editor.SetPlan(m.history.Present())
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
	m.status = fmt.Sprintf("%s  (undo %d / redo %d)", name, m.history.UndoCount(), m.history.RedoCount())
}

func (m *Model) nudgeThickness(d int) {
	m.editor.SetThickness(m.editor.State().Settings.Thickness + d)
	m.status = fmt.Sprintf("thickness: %d", m.editor.State().Settings.Thickness)
}
