package engine

import (
	"fmt"
	"strings"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const (
	MinBoardSize = 2
	MaxBoardSize = 19
)

// NewBoard создаёт size*size пустых пунктов построчно, id = y*size + x.
func NewBoard(size int) ([]*game.Point, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: board size %d is out of range %d..%d", errs.ErrInvalidBoard, size, MinBoardSize, MaxBoardSize)
	}
	points := make([]*game.Point, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			points = append(points, &game.Point{ID: y*size + x, X: x, Y: y})
		}
	}
	return points, nil
}

// Validate проверяет, что пункты образуют квадратную сетку с уникальными id.
// Вызывается один раз при загрузке доски, дальше это считается инвариантом.
func Validate(points []*game.Point) error {
	size := BoardSize(points)
	if size < MinBoardSize || size > MaxBoardSize || size*size != len(points) {
		return fmt.Errorf("%w: %d points do not form a square board", errs.ErrInvalidBoard, len(points))
	}

	ids := make(map[int]struct{}, len(points))
	cells := make(map[[2]int]struct{}, len(points))
	for _, p := range points {
		if p == nil {
			return fmt.Errorf("%w: nil point", errs.ErrInvalidBoard)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("%w: duplicate point id %d", errs.ErrInvalidBoard, p.ID)
		}
		ids[p.ID] = struct{}{}

		if p.X < 0 || p.Y < 0 || p.X >= size || p.Y >= size {
			return fmt.Errorf("%w: point %d at (%d,%d) is off the board", errs.ErrInvalidBoard, p.ID, p.X, p.Y)
		}
		cell := [2]int{p.X, p.Y}
		if _, dup := cells[cell]; dup {
			return fmt.Errorf("%w: two points at (%d,%d)", errs.ErrInvalidBoard, p.X, p.Y)
		}
		cells[cell] = struct{}{}
	}
	return nil
}

func BoardSize(points []*game.Point) int {
	size := 0
	for size*size < len(points) {
		size++
	}
	return size
}

// Clone глубокая копия доски для пробного хода.
func Clone(points []*game.Point) []*game.Point {
	cloned := make([]*game.Point, len(points))
	for i, p := range points {
		cp := *p
		if p.Stone != nil {
			stone := *p.Stone
			cp.Stone = &stone
		}
		cloned[i] = &cp
	}
	return cloned
}

// Minify кодирует доску по символу на пункт: '-' пусто, иначе номер игрока.
// Используется только для проверки ко.
func Minify(points []*game.Point) string {
	var sb strings.Builder
	sb.Grow(len(points))
	for _, p := range points {
		if p.Unoccupied() {
			sb.WriteByte('-')
			continue
		}
		sb.WriteByte(byte('0' + p.Stone.Player))
	}
	return sb.String()
}
