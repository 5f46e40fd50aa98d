package repo

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/engine"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return server, client
}

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func sampleMatch(t *testing.T) game.Match {
	t.Helper()
	points, err := engine.NewBoard(5)
	require.NoError(t, err)
	engine.PerformMove(points, points[6], game.PlayerBlack)
	engine.PerformMove(points, points[7], game.PlayerWhite)

	state := game.NewGameState(points)
	six := 6
	return game.Match{
		ID:        "7d3c5c6e-5d0b-4bf4-9b33-3c1a5e0b1f10",
		BoardSize: 5,
		Komi:      6.5,
		State:     state,
		Players: []game.MatchPlayer{
			{Number: game.PlayerBlack, UserID: "alice"},
			{Number: game.PlayerWhite, UserID: "bob"},
		},
		History: []game.Action{{Kind: game.ActionMove, Player: game.PlayerBlack, PointID: &six}},
	}
}
