// Package engine алгоритмы правил го над плоским списком пунктов:
// цепи, дамэ, снятие камней, выполнение хода.
package engine

import (
	"sort"

	"goban/internal/domain/game"
	"goban/internal/geometry"
)

func Find(points []*game.Point, id int) (*game.Point, bool) {
	for _, p := range points {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Adjacent соседние пункты (без диагоналей).
func Adjacent(points []*game.Point, target *game.Point) []*game.Point {
	adjacent := make([]*game.Point, 0, 4)
	for _, p := range points {
		if geometry.Adjacent(p, target) {
			adjacent = append(adjacent, p)
		}
	}
	return adjacent
}

// AdjacentToChain все пункты вокруг цепи, без самих камней цепи.
func AdjacentToChain(points []*game.Point, chain []*game.Point) []*game.Point {
	members := make(map[int]struct{}, len(chain))
	for _, p := range chain {
		members[p.ID] = struct{}{}
	}

	seen := make(map[int]struct{})
	adjacent := make([]*game.Point, 0)
	for _, member := range chain {
		for _, p := range Adjacent(points, member) {
			if _, ok := members[p.ID]; ok {
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			adjacent = append(adjacent, p)
		}
	}
	return adjacent
}

// Chains группирует камни по id цепи. Без ids возвращает все цепи по
// возрастанию id, иначе по группе на каждый id.
func Chains(points []*game.Point, ids ...int) [][]*game.Point {
	return groupBy(points, ids, func(p *game.Point) (int, bool) {
		if p.Unoccupied() {
			return 0, false
		}
		return p.Stone.ChainID, true
	})
}

func ChainOf(points []*game.Point, p *game.Point) []*game.Point {
	if p.Unoccupied() {
		return nil
	}
	return Chains(points, p.Stone.ChainID)[0]
}

func groupBy(points []*game.Point, ids []int, key func(*game.Point) (int, bool)) [][]*game.Point {
	grouped := make(map[int][]*game.Point)
	for _, p := range points {
		if k, ok := key(p); ok {
			grouped[k] = append(grouped[k], p)
		}
	}

	if len(ids) == 0 {
		ids = make([]int, 0, len(grouped))
		for k := range grouped {
			ids = append(ids, k)
		}
		sort.Ints(ids)
	}

	groups := make([][]*game.Point, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, grouped[id])
	}
	return groups
}

// LibertiesFor число пустых соседей пункта.
func LibertiesFor(points []*game.Point, target *game.Point) int {
	liberties := 0
	for _, p := range Adjacent(points, target) {
		if p.Unoccupied() {
			liberties++
		}
	}
	return liberties
}

// ChainLiberties дамэ цепи (каждый пустой пункт считается один раз).
func ChainLiberties(points []*game.Point, chain []*game.Point) int {
	liberties := 0
	for _, p := range AdjacentToChain(points, chain) {
		if p.Unoccupied() {
			liberties++
		}
	}
	return liberties
}

// SurroundedByEnemies: все соседи пункта заняты камнями соперника.
func SurroundedByEnemies(points []*game.Point, point *game.Point, player int) bool {
	for _, p := range Adjacent(points, point) {
		if !p.OccupiedByOpponentOf(player) {
			return false
		}
	}
	return true
}

// DeprivesLiberties: у всех своих цепей рядом с пунктом это последнее дамэ.
// Если своих соседей нет, возвращает true.
func DeprivesLiberties(points []*game.Point, point *game.Point, player int) bool {
	for _, chain := range adjacentChains(points, point, func(p *game.Point) bool { return p.OccupiedBy(player) }) {
		if ChainLiberties(points, chain) != 1 {
			return false
		}
	}
	return true
}

// DeprivesOpponentsLiberties: ход сюда снимает хотя бы одну цепь соперника.
func DeprivesOpponentsLiberties(points []*game.Point, point *game.Point, player int) bool {
	for _, chain := range adjacentChains(points, point, func(p *game.Point) bool { return p.OccupiedByOpponentOf(player) }) {
		if ChainLiberties(points, chain) == 1 {
			return true
		}
	}
	return false
}

func adjacentChains(points []*game.Point, point *game.Point, match func(*game.Point) bool) [][]*game.Point {
	ids := adjacentChainIDs(points, point, match)
	if len(ids) == 0 {
		return nil
	}
	return Chains(points, ids...)
}

func adjacentChainIDs(points []*game.Point, point *game.Point, match func(*game.Point) bool) []int {
	ids := make([]int, 0, 4)
	for _, p := range Adjacent(points, point) {
		if !match(p) {
			continue
		}
		if !containsInt(ids, p.Stone.ChainID) {
			ids = append(ids, p.Stone.ChainID)
		}
	}
	return ids
}

// UpdateJoinedChains переводит все свои цепи вокруг только что поставленного
// камня на его id цепи.
func UpdateJoinedChains(points []*game.Point, pointID int, player int) {
	placed, ok := Find(points, pointID)
	if !ok || !placed.OccupiedBy(player) {
		return
	}
	joined := adjacentChainIDs(points, placed, func(p *game.Point) bool { return p.OccupiedBy(player) })
	if len(joined) == 0 {
		return
	}

	target := placed.Stone.ChainID
	for _, p := range points {
		if p.OccupiedBy(player) && containsInt(joined, p.Stone.ChainID) {
			p.Stone.ChainID = target
		}
	}
}

// CaptureStones снимает цепи соперника без дамэ и возвращает число снятых камней.
// Камни player не трогает.
func CaptureStones(points []*game.Point, player int) int {
	captured := 0
	for _, chain := range Chains(points) {
		if len(chain) == 0 || chain[0].OccupiedBy(player) {
			continue
		}
		if ChainLiberties(points, chain) > 0 {
			continue
		}
		for _, p := range chain {
			p.CaptureStone()
			captured++
		}
	}
	return captured
}

func NextStoneID(points []*game.Point) int {
	highest := 0
	for _, p := range points {
		if p.Occupied() && p.Stone.ID > highest {
			highest = p.Stone.ID
		}
	}
	return highest + 1
}

func NextChainID(points []*game.Point) int {
	highest := 0
	for _, p := range points {
		if p.Occupied() && p.Stone.ChainID > highest {
			highest = p.Stone.ChainID
		}
	}
	return highest + 1
}

// BuildStone новый камень: присоединяется к первой своей цепи рядом
// или начинает новую.
func BuildStone(points []*game.Point, point *game.Point, player int) game.Stone {
	stone := game.Stone{
		ID:     NextStoneID(points),
		Player: player,
	}
	for _, p := range Adjacent(points, point) {
		if p.OccupiedBy(player) {
			stone.ChainID = p.Stone.ChainID
			return stone
		}
	}
	stone.ChainID = NextChainID(points)
	return stone
}

// PerformMove ставит камень, объединяет цепи и снимает пленных.
// Возвращает число снятых камней или -1, если пункт занят.
func PerformMove(points []*game.Point, point *game.Point, player int) int {
	if !point.Place(BuildStone(points, point, player)) {
		return -1
	}
	UpdateJoinedChains(points, point.ID, player)
	return CaptureStones(points, player)
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
