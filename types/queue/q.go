package queue

// Q is a mutable, re-iterable view over the command-line tokens which have not been consumed yet.
//
// Q keeps two cursors: current is the position of the token most recently handed out by Next (the
// removal point) and next is the position Next will hand out on its following call. Removing the
// current token with PopCurrent shifts the remaining tokens down and moves next back by one, so a
// sweep can remove tokens in place without skipping or repeating any.
//
// The usual pattern for a sweep is:
//
//	for q.Reset(); q.HasNext(); {
//		token := q.Next()
//		if matches(token) {
//			q.PopCurrent()
//		}
//	}
type Q struct {
	items   []string
	current int
	next    int
}

// IterationCallback is called by ForEach for every token. Returning false stops the iteration.
type IterationCallback func(item string, index int) (keepGoing bool)

// New creates a new Q holding a copy of items
func New(items []string) *Q {
	copied := make([]string, len(items))
	copy(copied, items)

	return &Q{items: copied}
}

// Len returns the count of tokens left in the Q
func (q *Q) Len() int {
	return len(q.items)
}

// Items returns a copy of the tokens left in the Q
func (q *Q) Items() []string {
	items := make([]string, len(q.items))
	copy(items, q.items)

	return items
}

// At returns the token at a specific index
func (q *Q) At(index int) (string, bool) {
	if index < 0 || index >= len(q.items) {
		return "", false
	}

	return q.items[index], true
}

// HasNext returns true when Next can hand out another token
func (q *Q) HasNext() bool {
	return q.next < len(q.items)
}

// Next advances the iteration and returns the token at the new current position.
// Next must only be called after HasNext returned true.
func (q *Q) Next() string {
	q.current = q.next
	q.next++

	return q.items[q.current]
}

// PeekCurrent returns the token at the current position without consuming it. The next cursor is
// moved right after the current position.
func (q *Q) PeekCurrent() (string, bool) {
	if q.current >= len(q.items) {
		return "", false
	}
	q.next = q.current + 1

	return q.items[q.current], true
}

// PopCurrent removes and returns the token at the current position. Tokens after it shift down by
// one. Calling PopCurrent on an exhausted Q is a programming error and panics.
func (q *Q) PopCurrent() string {
	if q.current >= len(q.items) {
		panic("queue: PopCurrent called with nothing queued")
	}
	item := q.items[q.current]
	q.items = append(q.items[:q.current], q.items[q.current+1:]...)
	if q.next > 0 {
		q.next--
	}

	return item
}

// PopAll drains the Q, returning every remaining token and resetting both cursors
func (q *Q) PopAll() []string {
	items := q.items
	q.items = []string{}
	q.current = 0
	q.next = 0

	return items
}

// Reset rewinds both cursors to the start of the Q without altering its contents
func (q *Q) Reset() *Q {
	q.current = 0
	q.next = 0

	return q
}

// ForEach resets the Q and iterates over its tokens. The callback may call PopCurrent to remove
// the token it was handed.
func (q *Q) ForEach(callback IterationCallback) {
	for q.Reset(); q.HasNext(); {
		item := q.Next()
		if !callback(item, q.current) {
			break
		}
	}
}
