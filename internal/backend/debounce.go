package backend

import "time"

// DebounceWindow is the quiet period a query must survive before it is sent
// to the remote catalog.
const DebounceWindow = 500 * time.Millisecond

// Debouncer decides when an edited query is stable enough to fetch.
type Debouncer struct {
	window time.Duration

	lastEdit    time.Time
	lastQueried string
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window < 0 {
		window = 0
	}
	return &Debouncer{window: window}
}

// Edit stamps the time of the latest change to the query.
func (d *Debouncer) Edit(now time.Time) {
	d.lastEdit = now
}

// Forget clears the last queried text so the next Ready call refetches even
// when the query matches what was previously sent.
func (d *Debouncer) Forget() {
	d.lastQueried = ""
}

// Ready reports whether query should be fetched at now.
func (d *Debouncer) Ready(query string, now time.Time) bool {
	if query == "" || query == d.lastQueried {
		return false
	}
	return now.Sub(d.lastEdit) >= d.window
}

// MarkQueried records that query has been sent.
func (d *Debouncer) MarkQueried(query string) {
	d.lastQueried = query
}

// LastQueried returns the most recent query that was sent.
func (d *Debouncer) LastQueried() string {
	return d.lastQueried
}

// ReadyAt returns the earliest time at which an unchanged query may be sent.
func (d *Debouncer) ReadyAt() time.Time {
	return d.lastEdit.Add(d.window)
}
