package board

import (
	"slices"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

// commit drops any redo branch and records the live collection.
func (s *Store) commit() {
	s.history = append(s.history[:s.historyIndex+1], s.elements)
	s.historyIndex = len(s.history) - 1
	s.notify()
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.elements)
	}
}

func (s *Store) CanUndo() bool { return s.historyIndex > 0 }
func (s *Store) CanRedo() bool { return s.historyIndex < len(s.history)-1 }

// HistoryLen returns the number of snapshots and the cursor position.
func (s *Store) HistoryLen() (n, index int) { return len(s.history), s.historyIndex }

// Snapshot returns the history entry at i. Callers must not modify it.
func (s *Store) Snapshot(i int) ([]*document.Element, bool) {
	if i < 0 || i >= len(s.history) {
		return nil, false
	}
	return s.history[i], true
}

// Undo steps the cursor back and restores that snapshot. It does nothing
// at the first snapshot or while an interaction is live.
func (s *Store) Undo() {
	if s.state != StateIdle || !s.CanUndo() {
		return
	}
	s.historyIndex--
	s.restore()
}

// Redo steps the cursor forward and restores that snapshot.
func (s *Store) Redo() {
	if s.state != StateIdle || !s.CanRedo() {
		return
	}
	s.historyIndex++
	s.restore()
}

func (s *Store) restore() {
	s.elements = s.history[s.historyIndex]
	s.pruneSelection()
	s.notify()
}

// ReplaceElements installs a collection produced elsewhere, such as by a
// peer. It rewrites the snapshot under the cursor instead of adding an undo
// step. While an interaction is live the collection is held until it ends.
func (s *Store) ReplaceElements(elements []*document.Element) {
	elements = slices.Clip(slices.Clone(elements))
	if s.state != StateIdle {
		s.pending, s.hasPending = elements, true
		return
	}
	s.installExternal(elements)
}

func (s *Store) installExternal(elements []*document.Element) {
	if elements == nil {
		elements = []*document.Element{}
	}
	s.elements = elements
	s.history[s.historyIndex] = elements
	s.pruneSelection()
}
