package game

const (
	PlayerBlack = 1
	PlayerWhite = 2
)

// Players номера игроков в порядке ходов.
var Players = []int{PlayerBlack, PlayerWhite}

type PlayerStat struct {
	Player    int  `json:"player" bson:"player"`
	Prisoners int  `json:"prisoners" bson:"prisoners"` // сколько камней этого игрока снято
	Passed    bool `json:"passed" bson:"passed"`
}

type GameState struct {
	CurrentPlayer int           `json:"current_player" bson:"current_player"`
	Points        []*Point      `json:"points" bson:"points"`
	PlayerStats   []*PlayerStat `json:"player_stats" bson:"player_stats"`
	PreviousState string        `json:"previous_state" bson:"previous_state"`
}

// NewGameState первыми ходят чёрные.
func NewGameState(points []*Point) GameState {
	stats := make([]*PlayerStat, 0, len(Players))
	for _, player := range Players {
		stats = append(stats, &PlayerStat{Player: player})
	}
	return GameState{
		CurrentPlayer: PlayerBlack,
		Points:        points,
		PlayerStats:   stats,
	}
}

func (s *GameState) Stat(player int) (*PlayerStat, bool) {
	for _, stat := range s.PlayerStats {
		if stat.Player == player {
			return stat, true
		}
	}
	return nil, false
}

func (s *GameState) AllPassed() bool {
	if len(s.PlayerStats) == 0 {
		return false
	}
	for _, stat := range s.PlayerStats {
		if !stat.Passed {
			return false
		}
	}
	return true
}

func (s *GameState) ClearPasses() {
	for _, stat := range s.PlayerStats {
		stat.Passed = false
	}
}

func (s *GameState) AdvanceTurn() {
	s.CurrentPlayer = Opponent(s.CurrentPlayer)
}

func Opponent(player int) int {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}
