// Package legality проверяет ход, пас или сдачу по текущему состоянию партии.
// Партию не меняет.
package legality

import (
	"goban/internal/domain/game"
	"goban/internal/engine"
)

type MoveResult int

const (
	MoveValid MoveResult = iota
	MoveGameOver
	MoveNotPlayersTurn
	MovePointNotFound
	MovePointOccupied
	MoveNoLiberties
	MoveKoRuleViolation
)

var moveMessages = map[MoveResult]string{
	MoveValid:           "",
	MoveGameOver:        "The game is over.",
	MoveNotPlayersTurn:  "It is not your turn.",
	MovePointNotFound:   "That point is not on the board.",
	MovePointOccupied:   "That point is already occupied.",
	MoveNoLiberties:     "That move would leave your stones without liberties.",
	MoveKoRuleViolation: "That move would repeat the previous position (ko).",
}

var moveNames = map[MoveResult]string{
	MoveValid:           "MoveValid",
	MoveGameOver:        "GameOver",
	MoveNotPlayersTurn:  "NotPlayersTurn",
	MovePointNotFound:   "PointNotFound",
	MovePointOccupied:   "PointOccupied",
	MoveNoLiberties:     "NoLiberties",
	MoveKoRuleViolation: "KoRuleViolation",
}

func (r MoveResult) Message() string { return moveMessages[r] }

func (r MoveResult) String() string { return moveNames[r] }

type PassResult int

const (
	PassValid PassResult = iota
	PassGameOver
	PassNotPlayersTurn
)

var passMessages = map[PassResult]string{
	PassValid:          "",
	PassGameOver:       "The game is over.",
	PassNotPlayersTurn: "It is not your turn.",
}

var passNames = map[PassResult]string{
	PassValid:          "PassValid",
	PassGameOver:       "GameOver",
	PassNotPlayersTurn: "NotPlayersTurn",
}

func (r PassResult) Message() string { return passMessages[r] }

func (r PassResult) String() string { return passNames[r] }

// GameOver: кто-то сдался или все спасовали подряд.
func GameOver(match *game.Match) bool {
	return match.Resigned != 0 || match.State.AllPassed()
}

// GetMoveResult проверки идут по порядку, возвращается первая неудачная.
func GetMoveResult(match *game.Match, player int, pointID int) MoveResult {
	state := &match.State
	switch {
	case GameOver(match):
		return MoveGameOver
	case player != state.CurrentPlayer:
		return MoveNotPlayersTurn
	}

	point, ok := engine.Find(state.Points, pointID)
	switch {
	case !ok:
		return MovePointNotFound
	case point.Occupied():
		return MovePointOccupied
	case suicide(state.Points, point, player):
		return MoveNoLiberties
	case repeatsPosition(state, pointID, player):
		return MoveKoRuleViolation
	}
	return MoveValid
}

func GetPassResult(match *game.Match, player int) PassResult {
	switch {
	case GameOver(match):
		return PassGameOver
	case player != match.State.CurrentPlayer:
		return PassNotPlayersTurn
	}
	return PassValid
}

// suicide: нет пустых соседей, никто не снят и ни одна своя цепь не даёт дамэ.
func suicide(points []*game.Point, point *game.Point, player int) bool {
	if engine.LibertiesFor(points, point) > 0 {
		return false
	}
	if engine.DeprivesOpponentsLiberties(points, point, player) {
		return false
	}
	return engine.SurroundedByEnemies(points, point, player) || engine.DeprivesLiberties(points, point, player)
}

// repeatsPosition играет ход на копии доски и сравнивает результат
// с позицией до последнего хода соперника.
func repeatsPosition(state *game.GameState, pointID int, player int) bool {
	if state.PreviousState == "" {
		return false
	}
	simulated := engine.Clone(state.Points)
	point, ok := engine.Find(simulated, pointID)
	if !ok {
		return false
	}
	engine.PerformMove(simulated, point, player)
	return engine.Minify(simulated) == state.PreviousState
}

type ResignResult int

const (
	ResignValid ResignResult = iota
	ResignGameOver
	ResignNotParticipant
)

var resignMessages = map[ResignResult]string{
	ResignValid:          "",
	ResignGameOver:       "The game is over.",
	ResignNotParticipant: "Only a player in this match can resign.",
}

func (r ResignResult) Message() string { return resignMessages[r] }

// GetResignResult сдаться можно и не в свой ход.
func GetResignResult(match *game.Match, player int) ResignResult {
	switch {
	case GameOver(match):
		return ResignGameOver
	case !match.HasPlayer(player):
		return ResignNotParticipant
	}
	return ResignValid
}
