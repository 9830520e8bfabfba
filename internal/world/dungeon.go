package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/telemetry"
)

// Default dungeon dimensions.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Dungeon is a single depth level: a grid of tiles carved into rooms.
type Dungeon struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	rng    rng.Source
}

// NewDungeon creates a level of the given size filled with walls.
func NewDungeon(width, height int, src rng.Source) *Dungeon {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		rng:    src,
	}
}

// Generate partitions the level, carves one room per partition and joins
// each room to the next in partition order, which keeps the level
// connected.
func (d *Dungeon) Generate(ctx context.Context, l Layout) {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.generate")
	defer span.End()
	start := time.Now()

	leaves := d.partition(Room{X: 1, Y: 1, Width: d.Width - 2, Height: d.Height - 2}, l, nil)
	for _, leaf := range leaves {
		if room, ok := d.roomIn(leaf, l); ok {
			d.carve(room)
			d.Rooms = append(d.Rooms, room)
		}
	}
	for i := 1; i < len(d.Rooms); i++ {
		d.corridor(d.Rooms[i-1].Center(), d.Rooms[i].Center())
	}

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.max_room", l.MaxRoom),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int64("dungeon.generation_ms", time.Since(start).Milliseconds()),
	)
}

// partition splits r until no side can hold two leaves, appending the
// leaves to out in left-to-right, top-to-bottom tree order.
func (d *Dungeon) partition(r Room, l Layout, out []Room) []Room {
	canCutRows := r.Height >= 2*l.MinLeaf
	canCutCols := r.Width >= 2*l.MinLeaf

	var horizontal bool
	switch {
	case canCutRows && canCutCols:
		// Cut across the longer side; squares go either way.
		switch {
		case r.Height > r.Width:
			horizontal = true
		case r.Width > r.Height:
			horizontal = false
		default:
			horizontal = rng.Coin(d.rng)
		}
	case canCutRows:
		horizontal = true
	case canCutCols:
		horizontal = false
	default:
		return append(out, r)
	}

	side := r.Width
	if horizontal {
		side = r.Height
	}
	offset := l.MinLeaf + rng.Intn(d.rng, side-2*l.MinLeaf+1)
	a, b := r.split(horizontal, offset)
	out = d.partition(a, l, out)
	return d.partition(b, l, out)
}

// roomIn picks a room inside leaf, leaving a wall margin of one cell.
func (d *Dungeon) roomIn(leaf Room, l Layout) (Room, bool) {
	maxW := min(l.MaxRoom, leaf.Width-2)
	maxH := min(l.MaxRoom, leaf.Height-2)
	if maxW < l.MinRoom || maxH < l.MinRoom {
		return Room{}, false
	}
	w := l.MinRoom + rng.Intn(d.rng, maxW-l.MinRoom+1)
	h := l.MinRoom + rng.Intn(d.rng, maxH-l.MinRoom+1)
	return Room{
		X:      leaf.X + 1 + rng.Intn(d.rng, leaf.Width-2-w+1),
		Y:      leaf.Y + 1 + rng.Intn(d.rng, leaf.Height-2-h+1),
		Width:  w,
		Height: h,
	}, true
}

func (d *Dungeon) carve(r Room) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			d.dig(x, y)
		}
	}
}

// corridor digs an L-shaped tunnel from a to b, bending at a random end.
func (d *Dungeon) corridor(a, b entity.Point) {
	bend := entity.Point{X: b.X, Y: a.Y}
	if rng.Coin(d.rng) {
		bend = entity.Point{X: a.X, Y: b.Y}
	}
	d.line(a, bend)
	d.line(bend, b)
}

// line digs a straight run between two cells sharing a row or column.
func (d *Dungeon) line(a, b entity.Point) {
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	for p := a; ; p = (entity.Point{X: p.X + dx, Y: p.Y + dy}) {
		d.dig(p.X, p.Y)
		if p == b {
			return
		}
	}
}

// dig turns an interior cell into floor. The outer border stays wall.
func (d *Dungeon) dig(x, y int) {
	if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
		d.Tiles[y][x] = TileFloor
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	return d.GetTile(x, y).IsPassable()
}

// SetTile replaces the tile at the given position. Out-of-bounds writes are ignored.
func (d *Dungeon) SetTile(x, y int, t Tile) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Tiles[y][x] = t
}

// GetTile returns the tile at the given position. Outside the level is wall.
func (d *Dungeon) GetTile(x, y int) Tile {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return TileWall
	}
	return d.Tiles[y][x]
}

// RandomFloor returns a random plain floor tile anywhere on the level, or
// (-1,-1) when there is none.
func (d *Dungeon) RandomFloor() entity.Point {
	for i := 0; i < 1000; i++ {
		x := rng.Intn(d.rng, d.Width)
		y := rng.Intn(d.rng, d.Height)
		if d.GetTile(x, y) == TileFloor {
			return entity.Point{X: x, Y: y}
		}
	}
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if d.Tiles[y][x] == TileFloor {
				return entity.Point{X: x, Y: y}
			}
		}
	}
	return entity.Point{X: -1, Y: -1}
}

// FromRows builds a level from an ASCII drawing, one string per row.
// Unknown runes become walls.
func FromRows(src rng.Source, rows ...string) *Dungeon {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	d := NewDungeon(width, len(rows), src)
	for y, row := range rows {
		for x, r := range []rune(row) {
			switch t := Tile(r); t {
			case TileFloor, TileWater, TileStairsDown, TileStairsUp:
				d.Tiles[y][x] = t
			}
		}
	}
	return d
}
