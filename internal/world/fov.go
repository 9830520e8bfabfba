package world

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/deepcavern/internal/entity"
)

// Octant transforms for recursive shadowcasting.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// FOV returns the cells visible from (ox, oy) within radius, origin included.
func (d *Dungeon) FOV(ox, oy, radius int) mapset.Set[entity.Point] {
	visible := mapset.New[entity.Point]()
	if ox < 0 || ox >= d.Width || oy < 0 || oy >= d.Height {
		return visible
	}
	visible.Put(entity.Point{X: ox, Y: oy})
	for _, o := range octants {
		d.castLight(visible, ox, oy, radius, 1, 1.0, 0.0, o)
	}
	return visible
}

func (d *Dungeon) castLight(visible mapset.Set[entity.Point], cx, cy, radius, row int, start, end float64, o [4]int) {
	if start < end {
		return
	}
	xx, xy, yx, yy := o[0], o[1], o[2], o[3]
	radiusSq := radius * radius
	var newStart float64

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		for dx <= 0 {
			dx++
			x := cx + dx*xx + dy*xy
			y := cy + dx*yx + dy*yy
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq && x >= 0 && x < d.Width && y >= 0 && y < d.Height {
				visible.Put(entity.Point{X: x, Y: y})
			}

			opaque := !d.GetTile(x, y).IsTransparent()
			if blocked {
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				d.castLight(visible, cx, cy, radius, j+1, start, lSlope, o)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
