package undo

import "github.com/gogpu/ink/document"

// Revert undoes a on doc: an added stroke is removed, removed strokes are
// reinserted at their recorded positions.
func Revert(doc *document.Document, a Action) {
	switch a := a.(type) {
	case AddStroke:
		doc.RemoveStroke(a.Stroke.ID)
	case RemoveStroke:
		doc.InsertStroke(a.Index, a.Stroke)
	case RemoveStrokes:
		// Ascending order restores each index against the strokes before
		// it, which are already back in place.
		for _, e := range sortedEntries(a.Entries) {
			doc.InsertStroke(e.Index, e.Stroke)
		}
	}
}

// Apply redoes a on doc.
func Apply(doc *document.Document, a Action) {
	switch a := a.(type) {
	case AddStroke:
		doc.AddStroke(a.Stroke)
	case RemoveStroke:
		doc.RemoveStroke(a.Stroke.ID)
	case RemoveStrokes:
		for _, e := range a.Entries {
			doc.RemoveStroke(e.Stroke.ID)
		}
	}
}

// Erase removes the strokes with the given IDs from doc and returns the
// action describing it, or nil if none was present.
func Erase(doc *document.Document, ids ...string) Action {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var entries []Entry
	for i, s := range doc.Strokes {
		if want[s.ID] {
			entries = append(entries, Entry{Stroke: s, Index: i})
		}
	}
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		doc.RemoveStroke(e.Stroke.ID)
	}
	return RemoveStrokes{Entries: entries}
}
