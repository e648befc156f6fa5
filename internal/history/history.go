// Package history keeps undo/redo state for immutable document values.
//
// History holds the present value plus two stacks. Set pushes the present
// onto the past and discards the future, so editing after an undo throws the
// redo branch away:
//
//	h := history.New(plan)
//	h.Set(edited)
//	h.Undo() // Present() == plan
//	h.Redo() // Present() == edited
//
// Both stacks grow without bound for the lifetime of the History. Values are
// stored as given; callers must not mutate a value after handing it over.
//
// History is not safe for concurrent use.
package history

import "errors"

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History is a linear undo/redo stack over values of type T.
type History[T any] struct {
	present T
	past    []T
	future  []T
}

// New returns a History whose present value is initial.
func New[T any](initial T) *History[T] {
	return &History[T]{present: initial}
}

// Present returns the current value.
func (h *History[T]) Present() T {
	return h.present
}

// Set records next as the present value and clears the redo stack.
func (h *History[T]) Set(next T) {
	h.past = append(h.past, h.present)
	h.present = next
	h.future = nil
}

// Undo moves the top of the past stack into the present. It is a no-op
// returning ErrNothingToUndo when there is no past.
func (h *History[T]) Undo() error {
	if len(h.past) == 0 {
		return ErrNothingToUndo
	}
	last := len(h.past) - 1
	prev := h.past[last]
	h.past = h.past[:last]
	h.future = append(h.future, h.present)
	h.present = prev
	return nil
}

// Redo is the mirror of Undo.
func (h *History[T]) Redo() error {
	if len(h.future) == 0 {
		return ErrNothingToRedo
	}
	last := len(h.future) - 1
	next := h.future[last]
	h.future = h.future[:last]
	h.past = append(h.past, h.present)
	h.present = next
	return nil
}

// Reset replaces the present value and forgets both stacks.
func (h *History[T]) Reset(val T) {
	h.present = val
	h.past = nil
	h.future = nil
}

func (h *History[T]) CanUndo() bool { return len(h.past) > 0 }
func (h *History[T]) CanRedo() bool { return len(h.future) > 0 }

func (h *History[T]) UndoCount() int { return len(h.past) }
func (h *History[T]) RedoCount() int { return len(h.future) }
