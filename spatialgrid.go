package quill

import (
	"math"
	"sort"

	"github.com/akmonengine/quill/actor"
	"github.com/golang/geo/r2"
)

// CellKey is the coordinate of a cell in the 2D grid
type CellKey struct {
	X, Y int
}

// Cell holds the indices of the bodies overlapping it
type Cell struct {
	bodyIndices []int
}

// Pair is a couple of bodies that potentially collide
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// SpatialGrid is a uniform grid, hashed into a fixed number of cells, used for the broad phase.
// Distant cells can share a bucket: pairs found here still have to be checked against their bounds.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid of square cells of side cellSize.
// numCells is rounded up to a power of two.
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds the body index to every cell covered by bounds
func (sg *SpatialGrid) Insert(bodyIndex int, bounds r2.Rect) {
	minCell := sg.worldToCell(bounds.Lo())
	maxCell := sg.worldToCell(bounds.Hi())

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs returns every pair of bodies sharing a cell whose bounds overlap.
// bodies must be the slice the grid was filled from. Pairs are ordered by the
// index of their first body, then by the first cell they were found in.
func (sg *SpatialGrid) FindPairs(bodies []*actor.Body) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)
	seen := make([]bool, len(bodies))

	for bodyIdx, bodyA := range bodies {
		clear(seen)

		boundsA := bodyA.Bounds()
		minCell := sg.worldToCell(boundsA.Lo())
		maxCell := sg.worldToCell(boundsA.Hi())

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					// Avoids (A,B) and (B,A), and the same pair found in several cells
					if otherIdx <= bodyIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true

					bodyB := bodies[otherIdx]
					if bodyA.IsStatic() && bodyB.IsStatic() {
						continue
					}
					if bodyA.IsRemoved() || bodyB.IsRemoved() {
						continue
					}

					if actor.Overlaps(boundsA, bodyB.Bounds()) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
					}
				}
			}
		}
	}

	return pairs
}

func (sg *SpatialGrid) worldToCell(pos r2.Point) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X / sg.cellSize)),
		Y: int(math.Floor(pos.Y / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
