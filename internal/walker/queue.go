package walker

import "github.com/quantmind-br/gitget/internal/domain"

// Queue is a FIFO of folders pending expansion
type Queue struct {
	items []domain.RemoteItem
	head  int
}

// Push appends a folder to the back of the queue
func (q *Queue) Push(item domain.RemoteItem) {
	q.items = append(q.items, item)
}

// Pop removes and returns the folder at the front of the queue
func (q *Queue) Pop() (domain.RemoteItem, bool) {
	if q.head >= len(q.items) {
		return domain.RemoteItem{}, false
	}
	item := q.items[q.head]
	q.items[q.head] = domain.RemoteItem{}
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append([]domain.RemoteItem(nil), q.items[q.head:]...)
		q.head = 0
	}
	return item, true
}

// Len returns the number of pending folders
func (q *Queue) Len() int {
	return len(q.items) - q.head
}
