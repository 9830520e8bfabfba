package turn

import (
	"github.com/zyedidia/generic/heap"

	"github.com/samdwyer/deepcavern/internal/entity"
)

// slot is one queued turn. seq breaks ties in insertion order and ticket
// identifies the entity's current membership.
type slot struct {
	e      *entity.Entity
	time   float64
	seq    uint64
	ticket uint64
}

// speedQueue orders entities by the time of their next turn. An entity with
// speed s acts every 1/s time units. Removal is lazy: stale slots are
// dropped when they reach the front.
type speedQueue struct {
	heap    *heap.Heap[slot]
	members map[*entity.Entity]uint64
	now     float64
	seq     uint64
	tickets uint64
}

func newSpeedQueue() *speedQueue {
	return &speedQueue{
		heap: heap.New[slot](func(a, b slot) bool {
			if a.time != b.time {
				return a.time < b.time
			}
			return a.seq < b.seq
		}),
		members: make(map[*entity.Entity]uint64),
	}
}

func interval(e *entity.Entity) float64 {
	speed := e.Speed
	if speed <= 0 {
		speed = entity.DefaultSpeed
	}
	return 1 / float64(speed)
}

func (q *speedQueue) add(e *entity.Entity) {
	q.tickets++
	q.members[e] = q.tickets
	q.push(e, q.tickets)
}

func (q *speedQueue) push(e *entity.Entity, ticket uint64) {
	q.seq++
	q.heap.Push(slot{e: e, time: q.now + interval(e), seq: q.seq, ticket: ticket})
}

func (q *speedQueue) remove(e *entity.Entity) {
	delete(q.members, e)
}

func (q *speedQueue) len() int {
	return len(q.members)
}

// next pops the entity whose turn comes first, advances time to it and
// queues its following turn.
func (q *speedQueue) next() (*entity.Entity, bool) {
	for {
		s, ok := q.heap.Pop()
		if !ok {
			return nil, false
		}
		if q.members[s.e] != s.ticket {
			continue
		}
		q.now = s.time
		q.push(s.e, s.ticket)
		return s.e, true
	}
}
