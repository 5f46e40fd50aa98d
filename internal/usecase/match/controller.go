package match

import (
	"fmt"
	"strconv"
	"time"

	"goban/internal/domain/game"
	"goban/internal/engine"
	"goban/internal/legality"
)

var now = func() time.Time { return time.Now().UTC() }

// TouchPoint ставит камень, если ход легален. Иначе партия не меняется,
// обновляется только уведомление.
func TouchPoint(match *game.Match, player int, pointID int) legality.MoveResult {
	result := legality.GetMoveResult(match, player, pointID)
	if result != legality.MoveValid {
		match.Notification = result.Message()
		return result
	}

	state := &match.State
	point, _ := engine.Find(state.Points, pointID)

	// эту позицию соперник не должен повторить следующим ходом (ко)
	before := engine.Minify(state.Points)
	captured := engine.PerformMove(state.Points, point, player)
	if stat, ok := state.Stat(game.Opponent(player)); ok {
		stat.Prisoners += captured
	}
	state.PreviousState = before
	state.ClearPasses()

	match.Record(game.Action{
		Kind:     game.ActionMove,
		Player:   player,
		PointID:  &pointID,
		Captured: captured,
		At:       now(),
	})
	state.AdvanceTurn()
	match.Notification = ""
	if legality.GameOver(match) {
		match.Notification = gameOverMessage(match)
	}
	return result
}

// TouchPass фиксирует пас. Второй пас подряд завершает партию.
func TouchPass(match *game.Match, player int) legality.PassResult {
	result := legality.GetPassResult(match, player)
	if result != legality.PassValid {
		match.Notification = result.Message()
		return result
	}

	state := &match.State
	if stat, ok := state.Stat(player); ok {
		stat.Passed = true
	}
	// после паса ограничение ко снимается
	state.PreviousState = engine.Minify(state.Points)

	match.Record(game.Action{Kind: game.ActionPass, Player: player, At: now()})
	state.AdvanceTurn()

	if legality.GameOver(match) {
		match.Notification = gameOverMessage(match)
	} else {
		match.Notification = fmt.Sprintf("Player %d passes.", player)
	}
	return result
}

func TouchResign(match *game.Match, player int) legality.ResignResult {
	result := legality.GetResignResult(match, player)
	if result != legality.ResignValid {
		match.Notification = result.Message()
		return result
	}

	match.Resigned = player
	match.Record(game.Action{Kind: game.ActionResign, Player: player, At: now()})
	match.Notification = fmt.Sprintf("Player %d resigns. %s", player, gameOverMessage(match))
	return result
}

// PlayerScore: территория + взятые пленные (+ коми для белых).
// Определён только после окончания партии.
func PlayerScore(match *game.Match, player int) (float64, bool) {
	if !legality.GameOver(match) {
		return 0, false
	}
	state := &match.State

	score := float64(engine.TerritoryFor(engine.Clone(state.Points), player))
	for _, stat := range state.PlayerStats {
		if stat.Player != player {
			score += float64(stat.Prisoners)
		}
	}
	if player == game.PlayerWhite {
		score += match.Komi
	}
	return score, true
}

// Winner возвращает номер победителя или 0 при ничьей. Пока партия идёт, ok == false.
func Winner(match *game.Match) (int, bool) {
	if !legality.GameOver(match) {
		return 0, false
	}
	if match.Resigned != 0 {
		return game.Opponent(match.Resigned), true
	}

	black, _ := PlayerScore(match, game.PlayerBlack)
	white, _ := PlayerScore(match, game.PlayerWhite)
	switch {
	case black > white:
		return game.PlayerBlack, true
	case white > black:
		return game.PlayerWhite, true
	}
	return 0, true
}

// Result итог партии в нотации SGF: "B+R", "W+6.5", "0". Пусто, пока партия идёт.
func Result(match *game.Match) string {
	winner, ok := Winner(match)
	switch {
	case !ok:
		return ""
	case winner == 0:
		return "0"
	}
	side := "B"
	if winner == game.PlayerWhite {
		side = "W"
	}
	if match.Resigned != 0 {
		return side + "+R"
	}
	own, _ := PlayerScore(match, winner)
	other, _ := PlayerScore(match, game.Opponent(winner))
	return side + "+" + strconv.FormatFloat(own-other, 'f', -1, 64)
}

func gameOverMessage(match *game.Match) string {
	winner, ok := Winner(match)
	switch {
	case !ok:
		return ""
	case winner == 0:
		return "Game over: draw."
	default:
		return fmt.Sprintf("Game over: player %d wins.", winner)
	}
}
