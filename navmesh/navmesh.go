// Package navmesh bakes a walkable grid from level obstacles and answers
// path queries over it.
package navmesh

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/foxtrot/common"
)

var (
	ErrNoPath      = errors.New("navmesh: no path")
	ErrOutOfBounds = errors.New("navmesh: point outside mesh")
	ErrBlocked     = errors.New("navmesh: point is not walkable")
)

// Rect is an axis-aligned area of the XZ plane.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (r Rect) Inflate(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinZ: r.MinZ - d, MaxX: r.MaxX + d, MaxZ: r.MaxZ + d}
}

func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxZ <= r.MinZ
}

// Mesh is a grid of walkable cells covering a level.
type Mesh struct {
	CellSize float64
	Origin   common.Vec2
	Width    int
	Depth    int

	blocked []bool
}

type cell struct {
	x int
	z int
}

// Bake rasterises obstacles, grown by agentRadius, into a grid over bounds.
func Bake(bounds Rect, obstacles []Rect, cellSize, agentRadius float64) (*Mesh, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("navmesh: bake: cell size %v must be positive", cellSize)
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("navmesh: bake: empty bounds %+v", bounds)
	}

	m := &Mesh{
		CellSize: cellSize,
		Origin:   common.Vec2{X: bounds.MinX, Y: bounds.MinZ},
		Width:    int(math.Ceil((bounds.MaxX - bounds.MinX) / cellSize)),
		Depth:    int(math.Ceil((bounds.MaxZ - bounds.MinZ) / cellSize)),
	}
	m.blocked = make([]bool, m.Width*m.Depth)

	for _, o := range obstacles {
		r := o.Inflate(agentRadius)
		start := m.clampCell(m.cellAt(r.MinX, r.MinZ))
		end := m.clampCell(m.cellAt(r.MaxX-0.001, r.MaxZ-0.001))
		for z := start.z; z <= end.z; z++ {
			for x := start.x; x <= end.x; x++ {
				center := m.center(cell{x: x, z: z})
				if center.X < r.MinX || center.X > r.MaxX || center.Y < r.MinZ || center.Y > r.MaxZ {
					continue
				}
				m.blocked[z*m.Width+x] = true
			}
		}
	}
	return m, nil
}

func (m *Mesh) cellAt(x, z float64) cell {
	return cell{
		x: int(math.Floor((x - m.Origin.X) / m.CellSize)),
		z: int(math.Floor((z - m.Origin.Y) / m.CellSize)),
	}
}

func (m *Mesh) clampCell(c cell) cell {
	if c.x < 0 {
		c.x = 0
	}
	if c.z < 0 {
		c.z = 0
	}
	if c.x >= m.Width {
		c.x = m.Width - 1
	}
	if c.z >= m.Depth {
		c.z = m.Depth - 1
	}
	return c
}

func (m *Mesh) inside(c cell) bool {
	return c.x >= 0 && c.z >= 0 && c.x < m.Width && c.z < m.Depth
}

func (m *Mesh) index(c cell) int {
	return c.z*m.Width + c.x
}

func (m *Mesh) center(c cell) common.Vec2 {
	half := m.CellSize * 0.5
	return common.Vec2{
		X: m.Origin.X + float64(c.x)*m.CellSize + half,
		Y: m.Origin.Y + float64(c.z)*m.CellSize + half,
	}
}

// Walkable reports whether the cell under p is free.
func (m *Mesh) Walkable(p common.Vec2) bool {
	c := m.cellAt(p.X, p.Y)
	return m.inside(c) && !m.blocked[m.index(c)]
}

// Cell returns the grid coordinates of p, clamped to the mesh.
func (m *Mesh) Cell(p common.Vec2) (int, int) {
	c := m.clampCell(m.cellAt(p.X, p.Y))
	return c.x, c.z
}

// FindPath returns waypoints from just after from up to and including to.
// Collinear cells are merged.
func (m *Mesh) FindPath(from, to common.Vec2) ([]common.Vec2, error) {
	start := m.cellAt(from.X, from.Y)
	goal := m.cellAt(to.X, to.Y)
	if !m.inside(start) || !m.inside(goal) {
		return nil, ErrOutOfBounds
	}
	if m.blocked[m.index(goal)] {
		return nil, ErrBlocked
	}
	// Agents pushed into inflated margins still need a way out.
	if m.blocked[m.index(start)] {
		free, ok := m.nearestFree(start)
		if !ok {
			return nil, ErrNoPath
		}
		start = free
	}

	cells := m.astar(start, goal)
	if cells == nil {
		return nil, ErrNoPath
	}

	out := make([]common.Vec2, 0, len(cells))
	for i := 1; i < len(cells)-1; i++ {
		prev, cur, next := cells[i-1], cells[i], cells[i+1]
		if cur.x-prev.x == next.x-cur.x && cur.z-prev.z == next.z-cur.z {
			continue
		}
		out = append(out, m.center(cur))
	}
	return append(out, to), nil
}

func (m *Mesh) nearestFree(c cell) (cell, bool) {
	for r := 1; r <= 3; r++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				n := cell{x: c.x + dx, z: c.z + dz}
				if m.inside(n) && !m.blocked[m.index(n)] {
					return n, true
				}
			}
		}
	}
	return cell{}, false
}

var directions = []struct {
	dx, dz int
	cost   float64
}{
	{-1, 0, 1}, {1, 0, 1}, {0, -1, 1}, {0, 1, 1},
	{-1, -1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {1, 1, math.Sqrt2},
}

func (m *Mesh) astar(start, goal cell) []cell {
	total := m.Width * m.Depth
	cameFrom := make([]int, total)
	gScore := make([]float64, total)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}

	startIdx := m.index(start)
	goalIdx := m.index(goal)
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Push(open, &openItem{pos: start, f: octile(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem).pos
		curIdx := m.index(cur)
		if curIdx == goalIdx {
			return reconstruct(cameFrom, m.Width, startIdx, goalIdx)
		}

		for _, d := range directions {
			n := cell{x: cur.x + d.dx, z: cur.z + d.dz}
			if !m.inside(n) || m.blocked[m.index(n)] {
				continue
			}
			// No corner cutting.
			if d.dx != 0 && d.dz != 0 {
				if m.blocked[m.index(cell{x: cur.x + d.dx, z: cur.z})] || m.blocked[m.index(cell{x: cur.x, z: cur.z + d.dz})] {
					continue
				}
			}
			idx := m.index(n)
			g := gScore[curIdx] + d.cost
			if g < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = g
				heap.Push(open, &openItem{pos: n, f: g + octile(n, goal)})
			}
		}
	}
	return nil
}

func reconstruct(cameFrom []int, width, startIdx, goalIdx int) []cell {
	path := make([]cell, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, cell{x: cur % width, z: cur / width})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func octile(a, b cell) float64 {
	dx := math.Abs(float64(a.x - b.x))
	dz := math.Abs(float64(a.z - b.z))
	return dx + dz + (math.Sqrt2-2)*math.Min(dx, dz)
}

type openItem struct {
	pos   cell
	f     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
