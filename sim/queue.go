// Implements the ready queues that hold arrived, unfinished processes.
// FIFOQueue backs round robin; RemainingTimeSet backs SRTF.

package sim

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// FIFOQueue represents a first-in first-out queue of ready processes.
type FIFOQueue struct {
	queue []*Process
}

// Enqueue adds a process to the back of the queue.
func (q *FIFOQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: p must not be nil")
	}
	q.queue = append(q.queue, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (q *FIFOQueue) Dequeue() *Process {
	if len(q.queue) == 0 {
		return nil
	}
	head := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return head
}

// Len returns the number of processes in the queue.
func (q *FIFOQueue) Len() int {
	return len(q.queue)
}

// IDs returns the queued process IDs, front first.
func (q *FIFOQueue) IDs() []string {
	ids := make([]string, len(q.queue))
	for i, p := range q.queue {
		ids[i] = p.ID
	}
	return ids
}

func (q *FIFOQueue) String() string {
	return "[" + strings.Join(q.IDs(), " ") + "]"
}

// remainingKey orders the SRTF ready set.
type remainingKey struct {
	remaining int64
	arrival   int64
	id        string
}

func keyOf(p *Process) remainingKey {
	return remainingKey{remaining: p.RemainingTime, arrival: p.ArrivalTime, id: p.ID}
}

// compareRemaining orders keys by remaining time, then arrival time, then ID.
func compareRemaining(a, b any) int {
	ka, kb := a.(remainingKey), b.(remainingKey)
	switch {
	case ka.remaining < kb.remaining:
		return -1
	case ka.remaining > kb.remaining:
		return 1
	case ka.arrival < kb.arrival:
		return -1
	case ka.arrival > kb.arrival:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

// RemainingTimeSet holds ready processes ordered by
// (RemainingTime, ArrivalTime, ID) ascending.
// A process's key is captured on Insert; callers MUST remove a process
// before changing its RemainingTime and re-insert it afterwards.
type RemainingTimeSet struct {
	tree *redblacktree.Tree
}

// NewRemainingTimeSet returns an empty set.
func NewRemainingTimeSet() *RemainingTimeSet {
	return &RemainingTimeSet{tree: redblacktree.NewWith(compareRemaining)}
}

// Insert adds p under its current key.
func (s *RemainingTimeSet) Insert(p *Process) {
	if p == nil {
		panic("Insert: p must not be nil")
	}
	s.tree.Put(keyOf(p), p)
}

// Min returns the process with the smallest key without removing it, or nil.
func (s *RemainingTimeSet) Min() *Process {
	node := s.tree.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*Process)
}

// PopMin removes and returns the process with the smallest key, or nil.
func (s *RemainingTimeSet) PopMin() *Process {
	node := s.tree.Left()
	if node == nil {
		return nil
	}
	s.tree.Remove(node.Key)
	return node.Value.(*Process)
}

// Remove deletes p from the set. p's RemainingTime must be unchanged since Insert.
func (s *RemainingTimeSet) Remove(p *Process) {
	s.tree.Remove(keyOf(p))
}

// Len returns the number of processes in the set.
func (s *RemainingTimeSet) Len() int {
	return s.tree.Size()
}

func (s *RemainingTimeSet) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	it := s.tree.Iterator()
	first := true
	for it.Next() {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		p := it.Value().(*Process)
		sb.WriteString(fmt.Sprintf("%s:%d", p.ID, p.RemainingTime))
	}
	sb.WriteString("]")
	return sb.String()
}
