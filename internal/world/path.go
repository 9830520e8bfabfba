package world

import (
	"github.com/zyedidia/generic/heap"

	"github.com/samdwyer/deepcavern/internal/entity"
)

type pathNode struct {
	p entity.Point
	g int
	f int
	n int // insertion order, for stable ties
}

var cardinals = [4]entity.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// FindPath returns the shortest 4-directional path from one point to another,
// both ends included, or nil if none exists. passable is consulted for every
// cell except the start.
func (d *Dungeon) FindPath(from, to entity.Point, passable func(x, y int) bool) []entity.Point {
	if from == to {
		return []entity.Point{from}
	}
	inBounds := func(p entity.Point) bool {
		return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
	}
	if !inBounds(to) || !passable(to.X, to.Y) {
		return nil
	}

	open := heap.New[pathNode](func(a, b pathNode) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.n < b.n
	})
	cameFrom := make(map[entity.Point]entity.Point)
	best := map[entity.Point]int{from: 0}
	seq := 0
	open.Push(pathNode{p: from, g: 0, f: from.Manhattan(to), n: seq})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if cur.p == to {
			return rebuild(cameFrom, from, to)
		}
		if cur.g > best[cur.p] {
			continue
		}
		for _, dir := range cardinals {
			next := entity.Point{X: cur.p.X + dir.X, Y: cur.p.Y + dir.Y}
			if !inBounds(next) || !passable(next.X, next.Y) {
				continue
			}
			g := cur.g + 1
			if old, seen := best[next]; seen && g >= old {
				continue
			}
			best[next] = g
			cameFrom[next] = cur.p
			seq++
			open.Push(pathNode{p: next, g: g, f: g + next.Manhattan(to), n: seq})
		}
	}
	return nil
}

func rebuild(cameFrom map[entity.Point]entity.Point, from, to entity.Point) []entity.Point {
	path := []entity.Point{to}
	for cur := to; cur != from; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
