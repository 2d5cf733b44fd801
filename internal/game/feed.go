package game

// feedMaxEntries is the HUD feed capacity.
const feedMaxEntries = 8

// FeedEntry is a single HUD message.
type FeedEntry struct {
	Tick     int
	Category string
	Message  string
}

// EventFeed is a ring buffer of recent events shown by front ends.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, category, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:     tick,
		Category: category,
		Message:  msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Len returns the number of buffered entries.
func (f *EventFeed) Len() int {
	return f.count
}
