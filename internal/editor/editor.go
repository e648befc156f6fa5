package editor

import (
	"wallsketch/internal/logging"
	"wallsketch/internal/plan"
)

// Editor holds the interaction state and the plan being edited, and hands
// every committed plan to OnChange. It is not safe for concurrent use.
type Editor struct {
	state    State
	plan     plan.Plan
	OnChange func(plan.Plan)
}

func New(p plan.Plan, s Settings) *Editor {
	return &Editor{state: NewState(s), plan: p}
}

func (e *Editor) State() State    { return e.state }
func (e *Editor) Plan() plan.Plan { return e.plan }

// SetPlan replaces the plan without a commit, e.g. after undo. Open drag and
// extend sessions are dropped since their indices may no longer match.
func (e *Editor) SetPlan(p plan.Plan) {
	e.plan = p
	e.state.Drag = nil
	e.state.Extend = nil
	e.state.Hover = nil
	if sel := e.state.Selection; sel != nil && sel.Wall >= len(p.Walls) {
		e.state.Selection = nil
	}
}

func (e *Editor) SetTool(t Tool) { e.state = e.state.WithTool(t) }

func (e *Editor) SetThickness(t int) { e.state = e.state.WithThickness(t) }

func (e *Editor) SetSnap(on bool) { e.state.Settings.Snap = on }

// Handle feeds one event through Step and reports whether it committed.
func (e *Editor) Handle(ev Event) bool {
	tr := Step(e.state, e.plan, ev)
	e.state = tr.State
	e.plan = tr.Plan
	if !tr.Commit {
		return false
	}
	logging.L().Debug("editor commit", "tool", e.state.Tool.String(), "walls", len(e.plan.Walls))
	if e.OnChange != nil {
		e.OnChange(e.plan)
	}
	return true
}
