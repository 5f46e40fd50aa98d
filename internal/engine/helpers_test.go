package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goban/internal/domain/game"
)

func newTestBoard(t *testing.T, size int) []*game.Point {
	t.Helper()
	points, err := NewBoard(size)
	require.NoError(t, err)
	return points
}

func at(t *testing.T, points []*game.Point, x, y int) *game.Point {
	t.Helper()
	size := BoardSize(points)
	p, ok := Find(points, y*size+x)
	require.True(t, ok, "no point at (%d,%d)", x, y)
	return p
}

// place ставит камень в обход правил, для расстановки позиций.
func place(t *testing.T, points []*game.Point, x, y, player, chainID int) *game.Point {
	t.Helper()
	p := at(t, points, x, y)
	require.True(t, p.Place(game.Stone{ID: NextStoneID(points), Player: player, ChainID: chainID}))
	return p
}

// play ходит через PerformMove, как контроллер партии.
func play(t *testing.T, points []*game.Point, x, y, player int) int {
	t.Helper()
	return PerformMove(points, at(t, points, x, y), player)
}

// requireChainPartition: id цепей совпадают со связными группами одного цвета.
func requireChainPartition(t *testing.T, points []*game.Point) {
	t.Helper()
	for _, p := range points {
		if p.Unoccupied() {
			continue
		}
		reachable := floodFill(points, p)
		for _, q := range points {
			if q.Unoccupied() {
				continue
			}
			_, connected := reachable[q.ID]
			sameChain := q.Stone.ChainID == p.Stone.ChainID
			require.Equal(t, connected, sameChain,
				"stones %d and %d: connected=%v but same chain id=%v", p.ID, q.ID, connected, sameChain)
		}
	}
}

func floodFill(points []*game.Point, start *game.Point) map[int]struct{} {
	seen := map[int]struct{}{start.ID: {}}
	queue := []*game.Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range Adjacent(points, current) {
			if _, ok := seen[n.ID]; ok {
				continue
			}
			if n.OccupiedBy(start.Stone.Player) {
				seen[n.ID] = struct{}{}
				queue = append(queue, n)
			}
		}
	}
	return seen
}
