package history

import (
	"errors"
	"testing"
)

func TestSetUndoRedo(t *testing.T) {
	h := New("init")
	h.Set("A")
	h.Set("B")

	if err := h.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got := h.Present(); got != "A" {
		t.Errorf("Present() = %q, want A", got)
	}
	if !h.CanRedo() {
		t.Error("CanRedo() = false after undo")
	}

	if err := h.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if got := h.Present(); got != "B" {
		t.Errorf("Present() = %q, want B", got)
	}
	if h.CanRedo() {
		t.Error("CanRedo() = true with empty future")
	}
}

func TestSetAfterUndoDiscardsFuture(t *testing.T) {
	h := New(0)
	h.Set(1)
	h.Set(2)
	_ = h.Undo()
	h.Set(3)

	if h.CanRedo() {
		t.Fatal("future survived a new edit")
	}
	if err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
	if got := h.Present(); got != 3 {
		t.Errorf("Present() = %d, want 3", got)
	}
	_ = h.Undo()
	if got := h.Present(); got != 1 {
		t.Errorf("after undo Present() = %d, want 1", got)
	}
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	h := New("only")
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh history reports available undo/redo")
	}
	if err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
	if got := h.Present(); got != "only" {
		t.Errorf("Present() = %q after no-ops", got)
	}
}

func TestReset(t *testing.T) {
	h := New(1)
	h.Set(2)
	h.Set(3)
	_ = h.Undo()

	h.Reset(10)
	if got := h.Present(); got != 10 {
		t.Errorf("Present() = %d, want 10", got)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Errorf("Reset kept history: undo=%d redo=%d", h.UndoCount(), h.RedoCount())
	}
}

func TestCounts(t *testing.T) {
	h := New(0)
	for i := 1; i <= 5; i++ {
		h.Set(i)
	}
	_ = h.Undo()
	_ = h.Undo()
	if h.UndoCount() != 3 || h.RedoCount() != 2 {
		t.Errorf("counts = %d/%d, want 3/2", h.UndoCount(), h.RedoCount())
	}
}

// The stacks are deliberately unbounded: every edit stays undoable.
func TestUnboundedGrowth(t *testing.T) {
	const n = 10000
	h := New(0)
	for i := 1; i <= n; i++ {
		h.Set(i)
	}
	if h.UndoCount() != n {
		t.Fatalf("UndoCount() = %d, want %d", h.UndoCount(), n)
	}
	for i := 0; i < n; i++ {
		if err := h.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if got := h.Present(); got != 0 {
		t.Errorf("Present() = %d after undoing everything, want 0", got)
	}
	if h.RedoCount() != n {
		t.Errorf("RedoCount() = %d, want %d", h.RedoCount(), n)
	}
}

func TestStructValues(t *testing.T) {
	type doc struct {
		walls []int
	}
	a := doc{walls: []int{1}}
	b := doc{walls: []int{1, 2}}
	h := New(a)
	h.Set(b)
	_ = h.Undo()
	if got := h.Present(); len(got.walls) != 1 {
		t.Errorf("Present().walls = %v, want [1]", got.walls)
	}
}
