package engine

import (
	"sort"

	"goban/internal/domain/game"
)

// Territories то же, что Chains, но для пустых пунктов и id территорий.
func Territories(points []*game.Point, ids ...int) [][]*game.Point {
	return groupBy(points, ids, func(p *game.Point) (int, bool) {
		if p.Occupied() || p.Unmarked() {
			return 0, false
		}
		return p.TerritoryID, true
	})
}

// MarkTerritories размечает каждую связную пустую область одним id.
// Обход построчный, при встрече нескольких меток они сразу сливаются в минимальную.
func MarkTerritories(points []*game.Point) {
	for _, p := range points {
		p.ClearTerritory()
	}

	next := 1
	for _, p := range rasterOrder(points) {
		if p.Occupied() || !p.Unmarked() {
			continue
		}

		found := make([]int, 0, 4)
		for _, n := range Adjacent(points, p) {
			if n.Unoccupied() && !n.Unmarked() && !containsInt(found, n.TerritoryID) {
				found = append(found, n.TerritoryID)
			}
		}

		switch len(found) {
		case 0:
			p.AddToTerritory(next)
			next++
		case 1:
			p.AddToTerritory(found[0])
		default:
			canonical := found[0]
			for _, id := range found[1:] {
				if id < canonical {
					canonical = id
				}
			}
			for _, q := range points {
				if q.TerritoryID != canonical && containsInt(found, q.TerritoryID) {
					q.AddToTerritory(canonical)
				}
			}
			p.AddToTerritory(canonical)
		}
	}
}

// TerritoryOwner игрок, чьи камни единственные граничат с областью.
func TerritoryOwner(points []*game.Point, region []*game.Point) (int, bool) {
	owner := 0
	for _, p := range AdjacentToChain(points, region) {
		if p.Unoccupied() {
			continue
		}
		if owner != 0 && owner != p.Stone.Player {
			return 0, false
		}
		owner = p.Stone.Player
	}
	return owner, owner != 0
}

// TerritoryFor территория игрока в пунктах. Перезаписывает разметку территорий на доске.
func TerritoryFor(points []*game.Point, player int) int {
	MarkTerritories(points)
	total := 0
	for _, region := range Territories(points) {
		if owner, ok := TerritoryOwner(points, region); ok && owner == player {
			total += len(region)
		}
	}
	return total
}

func rasterOrder(points []*game.Point) []*game.Point {
	ordered := make([]*game.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Y != ordered[j].Y {
			return ordered[i].Y < ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})
	return ordered
}
