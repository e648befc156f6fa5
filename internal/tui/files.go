package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"wallsketch/internal/logging"
	"wallsketch/internal/plan"
	"wallsketch/internal/snapshot"
	"wallsketch/internal/watch"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !plan.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the plan with the file at p, resets history and moves
// the watcher onto p. The returned command waits on the new watcher.
func (m *Model) loadPath(p string) tea.Cmd {
	pl, err := plan.Load(p, m.planPath)
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	m.selPath = p
	m.reset(pl)
	m.status = "loaded: " + filepath.Base(p) + "  " + pl.Summary()
	m.rewatch(p)
	return waitForChange(m.watcher)
}

// rewatch closes the current watcher and starts one on p.
func (m *Model) rewatch(p string) {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			logging.L().Warn("close watcher", "path", m.watcher.Path(), "err", err)
		}
		m.watcher = nil
	}
	w, err := watch.New(p, watch.DefaultDebounce)
	if err != nil {
		m.status = "watch error: " + err.Error()
		return
	}
	m.watcher = w
}

// isOpen reports whether path names the document being edited.
func (m Model) isOpen(path string) bool {
	if m.selPath == "" {
		return false
	}
	a, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	b, err := filepath.Abs(m.selPath)
	if err != nil {
		return false
	}
	return a == b
}

// saveTarget is the JSON file ctrl+s writes: the loaded file when it is
// JSON, otherwise a .json next to it in the save directory.
func (m Model) saveTarget() string {
	if m.selPath == "" {
		return filepath.Join(m.saveDir, "plan.json")
	}
	if strings.EqualFold(filepath.Ext(m.selPath), ".json") {
		return m.selPath
	}
	return filepath.Join(m.saveDir, stem(m.selPath)+".json")
}

func (m Model) snapshotTarget() string {
	name := "plan"
	if m.selPath != "" {
		name = stem(m.selPath)
	}
	return filepath.Join(m.saveDir, name+".png")
}

func stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (m *Model) save() {
	target := m.saveTarget()
	if err := plan.Save(target, m.planPath, m.editor.Plan()); err != nil {
		m.status = "save error: " + err.Error()
		return
	}
	m.status = "saved: " + target
}

func (m *Model) exportPNG() {
	target := m.snapshotTarget()
	if err := snapshot.SavePNG(target, m.editor.Plan(), snapshot.Options{Labels: true}); err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	m.status = "exported: " + target
}

type fileChangedMsg struct{ path string }

type watchErrMsg struct{ err error }

// waitForChange blocks until the watcher reports; it is re-armed after each
// message. A nil watcher yields no command.
func waitForChange(w *watch.FileWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case p, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return fileChangedMsg{path: p}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// reload picks up an outside change to the open file. Events for any other
// path are stale and dropped. Our own saves come back through the watcher
// too; those leave history alone.
func (m *Model) reload(path string) {
	if !m.isOpen(path) {
		return
	}
	pl, err := plan.Load(path, m.planPath)
	if err != nil {
		m.status = "reload error: " + err.Error()
		return
	}
	if samePlan(pl, m.editor.Plan()) {
		return
	}
	m.reset(pl)
	m.status = fmt.Sprintf("reloaded: %s  %s", filepath.Base(path), pl.Summary())
}

func samePlan(a, b plan.Plan) bool {
	ea, err := plan.Encode(a)
	if err != nil {
		return false
	}
	eb, err := plan.Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}
