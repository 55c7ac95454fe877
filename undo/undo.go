// Package undo records stroke-level editing actions as reversible
// descriptors.
//
// A Manager only stores actions; it never touches a document. An editing
// controller pushes an action after applying it, and on Undo or Redo
// receives the action back to revert or reapply, for which Revert and
// Apply are provided.
package undo

import (
	"cmp"
	"slices"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/document"
)

// Action is a reversible edit. The concrete types are AddStroke,
// RemoveStroke and RemoveStrokes.
type Action interface {
	isAction()
}

// AddStroke records that Stroke was appended.
type AddStroke struct {
	Stroke *document.Stroke
}

func (AddStroke) isAction() {}

// RemoveStroke records that Stroke was removed from position Index.
type RemoveStroke struct {
	Stroke *document.Stroke
	Index  int
}

func (RemoveStroke) isAction() {}

// Entry is one stroke of a RemoveStrokes action.
type Entry struct {
	Stroke *document.Stroke
	Index  int
}

// RemoveStrokes records that several strokes were removed at once, as for
// an eraser gesture. Each Index is the stroke's position before any of
// them was removed. Entries recorded through PushRemoveStrokes are sorted
// by Index.
type RemoveStrokes struct {
	Entries []Entry
}

func (RemoveStrokes) isAction() {}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the undo history at n actions, dropping the oldest. A
// value <= 0 means unlimited.
func WithLimit(n int) Option {
	return func(m *Manager) {
		m.limit = max(n, 0)
	}
}

// Manager holds the undo and redo stacks.
//
// Pushing a new action clears the redo stack. A Manager is not safe for
// concurrent use.
type Manager struct {
	undo  []Action
	redo  []Action
	limit int
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PushAddStroke records that s was added.
func (m *Manager) PushAddStroke(s *document.Stroke) {
	m.push(AddStroke{Stroke: s})
}

// PushRemoveStroke records that s was removed from index.
func (m *Manager) PushRemoveStroke(s *document.Stroke, index int) {
	m.push(RemoveStroke{Stroke: s, Index: index})
}

// PushRemoveStrokes records a batch removal. The entries may be in any
// order; an empty batch is ignored.
func (m *Manager) PushRemoveStrokes(entries []Entry) {
	if len(entries) == 0 {
		return
	}
	m.push(RemoveStrokes{Entries: sortedEntries(entries)})
}

func sortedEntries(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// Push records an arbitrary action.
func (m *Manager) Push(a Action) {
	if a == nil {
		return
	}
	m.push(a)
}

func (m *Manager) push(a Action) {
	m.undo = append(m.undo, a)
	if m.limit > 0 && len(m.undo) > m.limit {
		drop := len(m.undo) - m.limit
		clear(m.undo[:drop])
		m.undo = m.undo[drop:]
	}
	clear(m.redo)
	m.redo = m.redo[:0]
}

// Undo pops the most recent action and moves it to the redo stack. It
// returns nil when there is nothing to undo.
func (m *Manager) Undo() Action {
	a, ok := pop(&m.undo)
	if !ok {
		return nil
	}
	m.redo = append(m.redo, a)
	ink.Logger().Debug("undo", "action", describe(a), "undo", len(m.undo), "redo", len(m.redo))
	return a
}

// Redo pops the most recently undone action and moves it back to the undo
// stack. It returns nil when there is nothing to redo.
func (m *Manager) Redo() Action {
	a, ok := pop(&m.redo)
	if !ok {
		return nil
	}
	m.undo = append(m.undo, a)
	ink.Logger().Debug("redo", "action", describe(a), "undo", len(m.undo), "redo", len(m.redo))
	return a
}

// CanUndo reports whether Undo would return an action.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo reports whether Redo would return an action.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// Len returns the sizes of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Clear empties both stacks.
func (m *Manager) Clear() {
	clear(m.undo)
	clear(m.redo)
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

func pop(stack *[]Action) (Action, bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	a := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return a, true
}

func describe(a Action) string {
	switch a.(type) {
	case AddStroke:
		return "add-stroke"
	case RemoveStroke:
		return "remove-stroke"
	case RemoveStrokes:
		return "remove-strokes"
	default:
		return "unknown"
	}
}
