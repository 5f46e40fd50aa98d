package game

import "time"

const (
	ActionMove   = "move"
	ActionPass   = "pass"
	ActionResign = "resign"
)

type Match struct {
	ID           string        `json:"id" bson:"_id"`
	BoardSize    int           `json:"board_size" bson:"board_size"`
	Komi         float64       `json:"komi" bson:"komi"`
	State        GameState     `json:"game_state" bson:"game_state"`
	Players      []MatchPlayer `json:"players" bson:"players"`
	LastAction   *Action       `json:"last_action,omitempty" bson:"last_action,omitempty"`
	History      []Action      `json:"history" bson:"history"`
	Notification string        `json:"notification" bson:"notification"`
	Resigned     int           `json:"resigned,omitempty" bson:"resigned,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// MatchPlayer UserID определяет игрока, Name только для записи партии.
type MatchPlayer struct {
	Number int    `json:"number" bson:"number"`
	UserID string `json:"user_id" bson:"user_id"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
}

type Action struct {
	Kind     string    `json:"kind" bson:"kind"`
	Player   int       `json:"player" bson:"player"`
	PointID  *int      `json:"point_id,omitempty" bson:"point_id,omitempty"`
	Captured int       `json:"captured,omitempty" bson:"captured,omitempty"`
	At       time.Time `json:"at" bson:"at"`
}

// PlayerNumber номер игрока (1 - чёрные, 2 - белые) для пользователя.
func (m *Match) PlayerNumber(userID string) (int, bool) {
	for _, p := range m.Players {
		if p.UserID != "" && p.UserID == userID {
			return p.Number, true
		}
	}
	return 0, false
}

func (m *Match) HasPlayer(number int) bool {
	for _, p := range m.Players {
		if p.Number == number {
			return true
		}
	}
	return false
}

func (m *Match) Record(action Action) {
	m.History = append(m.History, action)
	m.LastAction = &action
}

// @name CreateMatchRequest
type CreateMatchRequest struct {
	BoardSize      int      `json:"board_size"`
	Komi           *float64 `json:"komi,omitempty"`
	CreatorIsWhite bool     `json:"creator_is_white"`
}

// @name MoveRequest
type MoveRequest struct {
	PointID int `json:"point_id"`
}

// @name PlayerScore
type PlayerScore struct {
	Player int     `json:"player"`
	Score  float64 `json:"score"`
}

// @name ScoreResponse
type ScoreResponse struct {
	Scores []PlayerScore `json:"scores"`
	Winner int           `json:"winner"`
	Result string        `json:"result"`
}

// @name Suggestion
type Suggestion struct {
	PointID *int `json:"point_id,omitempty"`
	Pass    bool `json:"pass"`
}
