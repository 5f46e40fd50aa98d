// Package notation переводит партию во внешние текстовые форматы:
// позиция для сервиса подсказок, координаты SGF и запись партии.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"goban/internal/domain/game"
	"goban/internal/engine"
	errs "goban/internal/errors"
)

const Pass = "pass"

// EncodeBoard кодирует позицию как "<size>:<toPlay>:<rows>", строки через '/',
// клетки '.', 'b', 'w'.
func EncodeBoard(state *game.GameState) string {
	size := engine.BoardSize(state.Points)
	cells := make([]byte, size*size)
	for i := range cells {
		cells[i] = '.'
	}
	for _, p := range state.Points {
		if p.Occupied() && p.ID < len(cells) {
			cells[p.ID] = colour(p.Stone.Player)
		}
	}

	rows := make([]string, 0, size)
	for y := 0; y < size; y++ {
		rows = append(rows, string(cells[y*size:(y+1)*size]))
	}
	return strconv.Itoa(size) + ":" + string(colour(state.CurrentPlayer)) + ":" + strings.Join(rows, "/")
}

// DecodeMove разбирает ответ сервиса подсказок. ok == false означает пас.
func DecodeMove(reply string, size int) (pointID int, ok bool, err error) {
	reply = strings.ToLower(strings.TrimSpace(reply))
	if reply == "" || reply == Pass {
		return 0, false, nil
	}
	x, y, err := ParseCoord(reply)
	if err != nil {
		return 0, false, err
	}
	if x >= size || y >= size {
		return 0, false, fmt.Errorf("%w: %q is off a %dx%d board", errs.ErrMalformedSuggestion, reply, size, size)
	}
	return y*size + x, true, nil
}

// ParseCoord "dd" -> (3, 3)
func ParseCoord(coord string) (x, y int, err error) {
	if len(coord) != 2 || !isCoordLetter(coord[0]) || !isCoordLetter(coord[1]) {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrMalformedSuggestion, coord)
	}
	return int(coord[0] - 'a'), int(coord[1] - 'a'), nil
}

func FormatCoord(x, y int) string {
	return string([]byte{byte('a' + x), byte('a' + y)})
}

func isCoordLetter(c byte) bool {
	return c >= 'a' && c < 'a'+engine.MaxBoardSize
}

func colour(player int) byte {
	if player == game.PlayerWhite {
		return 'w'
	}
	return 'b'
}
