package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"wallsketch/internal/config"
	"wallsketch/internal/editor"
	"wallsketch/internal/geom"
	"wallsketch/internal/history"
	"wallsketch/internal/plan"
	"wallsketch/internal/watch"
)

// blankCanvas is the document size used when a plan has neither dimensions
// nor walls to measure.
var blankCanvas = plan.Dimensions{Width: 800, Height: 600}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	planPath string
	saveDir  string

	editor  *editor.Editor
	history *history.History[plan.Plan]
	watcher *watch.FileWatcher

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// left button held over the canvas
	pressed bool

	// pointer position in document space
	hovering bool
	pointer  geom.Point

	// wall inspector
	showAttrs bool
	tbl       table.Model
}

func New(cfg config.Config) Model {
	m := Model{
		helpVisible: true,
		status:      "wallsketch ready",
		planPath:    cfg.Files.PlanPath,
		saveDir:     cfg.Files.SaveDir,
	}
	m.cwd, _ = os.Getwd()
	if m.saveDir == "" {
		m.saveDir = m.cwd
	}
	m.history = history.New(plan.Plan{})
	m.editor = editor.New(plan.Plan{}, cfg.EditorSettings())
	m.editor.OnChange = m.history.Set
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Plans"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT walls (POLYGON, MULTIPOLYGON). Enter adds them; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithColumns(attrColumns), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath opens path at launch and watches it for outside changes. A
// path that does not exist yet becomes the save target of an empty plan.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		m.selPath = path
		m.status = "new plan: " + path
		return m
	}
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.watcher)
}

// Plan is the plan currently shown.
func (m Model) Plan() plan.Plan { return m.editor.Plan() }

// Close releases the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// commit replaces the plan outside the tool machine and records it.
func (m *Model) commit(p plan.Plan) {
	m.editor.SetPlan(p)
	m.history.Set(p)
}

// reset replaces the plan and drops the undo history.
func (m *Model) reset(p plan.Plan) {
	m.history.Reset(p)
	m.editor.SetPlan(p)
	m.refreshAttrsFromCurrent()
}

// docSize is the document box mapped onto the canvas.
func (m Model) docSize() plan.Dimensions {
	p := m.editor.Plan()
	if p.Dimensions.Width > 0 && p.Dimensions.Height > 0 {
		return p.Dimensions
	}
	if bb, ok := p.Bounds(); ok && bb.MaxX > 0 && bb.MaxY > 0 {
		return plan.Dimensions{Width: bb.MaxX, Height: bb.MaxY}
	}
	return blankCanvas
}
