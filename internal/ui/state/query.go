package state

// Query is a single-line, append-only text input used by the dashboard filter
// and the search lists.
type Query struct {
	Text string
}

// Printable reports whether r is a printable ASCII character.
func Printable(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}

// Insert appends the printable ASCII runes of text and reports whether
// anything changed.
func (q *Query) Insert(text string) bool {
	changed := false
	for _, r := range text {
		if !Printable(r) {
			continue
		}
		q.Text += string(r)
		changed = true
	}
	return changed
}

// DeleteBackward removes the last rune and reports whether anything changed.
func (q *Query) DeleteBackward() bool {
	runes := []rune(q.Text)
	if len(runes) == 0 {
		return false
	}
	q.Text = string(runes[:len(runes)-1])
	return true
}

// Empty reports whether the query has no text.
func (q Query) Empty() bool {
	return q.Text == ""
}
