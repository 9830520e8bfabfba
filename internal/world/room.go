package world

import "github.com/samdwyer/deepcavern/internal/entity"

// Room is a rectangle of the level: a carved room, or a BSP partition
// while the level is being split.
type Room struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Center returns the middle cell, where corridors attach.
func (r Room) Center() entity.Point {
	return entity.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside the room.
func (r Room) Contains(p entity.Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Area returns the number of cells the room covers.
func (r Room) Area() int {
	return r.Width * r.Height
}

// split cuts the room at offset along one axis. A horizontal cut stacks
// the halves top and bottom.
func (r Room) split(horizontal bool, offset int) (Room, Room) {
	if horizontal {
		return Room{r.X, r.Y, r.Width, offset},
			Room{r.X, r.Y + offset, r.Width, r.Height - offset}
	}
	return Room{r.X, r.Y, offset, r.Height},
		Room{r.X + offset, r.Y, r.Width - offset, r.Height}
}
