package match

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	"goban/internal/domain/user"
	"goban/internal/engine"
	errs "goban/internal/errors"
	"goban/internal/legality"
	"goban/internal/notation"
)

type MatchStore interface {
	SaveMatch(ctx context.Context, match game.Match) error
	GetMatch(ctx context.Context, id string) (game.Match, error)
}

// MatchCache быстрый слой перед MatchStore. Промах - ErrMatchNotFound.
type MatchCache interface {
	CacheMatch(ctx context.Context, match game.Match) error
	CachedMatch(ctx context.Context, id string) (game.Match, error)
	Evict(ctx context.Context, id string) error
}

type Suggester interface {
	SuggestMove(ctx context.Context, board string) (string, error)
}

type Notifier interface {
	Publish(match game.Match)
}

type MatchUseCase struct {
	store     MatchStore
	cache     MatchCache
	notifier  Notifier
	suggester Suggester
	cfg       bootstrap.Config
	log       *zap.SugaredLogger

	locks sync.Map // map[matchID]*sync.Mutex
}

func NewMatchUseCase(store MatchStore, cache MatchCache, notifier Notifier, suggester Suggester, cfg bootstrap.Config, log *zap.SugaredLogger) *MatchUseCase {
	return &MatchUseCase{
		store:     store,
		cache:     cache,
		notifier:  notifier,
		suggester: suggester,
		cfg:       cfg,
		log:       log,
	}
}

func (u *MatchUseCase) CreateMatch(ctx context.Context, creator user.Me, req game.CreateMatchRequest) (game.Match, error) {
	size := req.BoardSize
	if size == 0 {
		size = u.cfg.DefaultBoardSize
	}
	komi := u.cfg.DefaultKomi
	if req.Komi != nil {
		komi = *req.Komi
	}

	points, err := engine.NewBoard(size)
	if err != nil {
		return game.Match{}, err
	}

	number := game.PlayerBlack
	if req.CreatorIsWhite {
		number = game.PlayerWhite
	}
	createdAt := now()
	match := game.Match{
		ID:        uuid.New().String(),
		BoardSize: size,
		Komi:      komi,
		State:     game.NewGameState(points),
		Players:   []game.MatchPlayer{{Number: number, UserID: creator.UserID, Name: creator.Username}},
		History:   []game.Action{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if err := u.save(ctx, match); err != nil {
		u.log.Errorf("failed to save new match: %v", err)
		return game.Match{}, fmt.Errorf("%w: %v", errs.ErrCreateMatchFailed, err)
	}
	u.log.Infof("match %s created by %s (%dx%d)", match.ID, creator.UserID, size, size)
	return match, nil
}

// JoinMatch занимает свободное место. Повторный вход участника ничего не меняет.
func (u *MatchUseCase) JoinMatch(ctx context.Context, matchID string, guest user.Me) (game.Match, error) {
	unlock := u.lock(matchID)
	defer unlock()

	match, err := u.load(ctx, matchID)
	if err != nil {
		return game.Match{}, err
	}
	if _, ok := match.PlayerNumber(guest.UserID); ok {
		return match, nil
	}

	free := 0
	for _, number := range game.Players {
		if !match.HasPlayer(number) {
			free = number
			break
		}
	}
	if free == 0 {
		return game.Match{}, errs.ErrMatchFull
	}

	match.Players = append(match.Players, game.MatchPlayer{Number: free, UserID: guest.UserID, Name: guest.Username})
	match.UpdatedAt = now()
	if err := u.save(ctx, match); err != nil {
		return game.Match{}, err
	}
	u.notifier.Publish(match)
	return match, nil
}

func (u *MatchUseCase) GetMatch(ctx context.Context, matchID string) (game.Match, error) {
	return u.load(ctx, matchID)
}

func (u *MatchUseCase) PlayMove(ctx context.Context, matchID, userID string, pointID int) (game.Match, legality.MoveResult, error) {
	var result legality.MoveResult
	match, err := u.act(ctx, matchID, userID, func(m *game.Match, player int) bool {
		result = TouchPoint(m, player, pointID)
		return result == legality.MoveValid
	})
	return match, result, err
}

func (u *MatchUseCase) Pass(ctx context.Context, matchID, userID string) (game.Match, legality.PassResult, error) {
	var result legality.PassResult
	match, err := u.act(ctx, matchID, userID, func(m *game.Match, player int) bool {
		result = TouchPass(m, player)
		return result == legality.PassValid
	})
	return match, result, err
}

func (u *MatchUseCase) Resign(ctx context.Context, matchID, userID string) (game.Match, legality.ResignResult, error) {
	var result legality.ResignResult
	match, err := u.act(ctx, matchID, userID, func(m *game.Match, player int) bool {
		result = TouchResign(m, player)
		return result == legality.ResignValid
	})
	return match, result, err
}

func (u *MatchUseCase) Score(ctx context.Context, matchID string) (game.ScoreResponse, error) {
	match, err := u.load(ctx, matchID)
	if err != nil {
		return game.ScoreResponse{}, err
	}
	winner, ok := Winner(&match)
	if !ok {
		return game.ScoreResponse{}, errs.ErrMatchInProgress
	}

	resp := game.ScoreResponse{Winner: winner, Result: Result(&match)}
	for _, player := range game.Players {
		score, _ := PlayerScore(&match, player)
		resp.Scores = append(resp.Scores, game.PlayerScore{Player: player, Score: score})
	}
	return resp, nil
}

// Suggest спрашивает внешний сервис, какой ход сделать. Партия не меняется.
func (u *MatchUseCase) Suggest(ctx context.Context, matchID, userID string) (game.Suggestion, error) {
	if u.suggester == nil {
		return game.Suggestion{}, errs.ErrSuggestionUnavailable
	}
	match, err := u.load(ctx, matchID)
	if err != nil {
		return game.Suggestion{}, err
	}
	if _, ok := match.PlayerNumber(userID); !ok {
		return game.Suggestion{}, errs.ErrPlayerNotInMatch
	}

	reply, err := u.suggester.SuggestMove(ctx, notation.EncodeBoard(&match.State))
	if errors.Is(err, errs.ErrMalformedSuggestion) {
		return game.Suggestion{}, err
	}
	if err != nil {
		u.log.Warnw("suggestion request failed", "match", matchID, "error", err)
		return game.Suggestion{}, fmt.Errorf("%w: %v", errs.ErrSuggestionUnavailable, err)
	}
	pointID, ok, err := notation.DecodeMove(reply, match.BoardSize)
	if err != nil {
		return game.Suggestion{}, err
	}
	if !ok {
		return game.Suggestion{Pass: true}, nil
	}
	return game.Suggestion{PointID: &pointID}, nil
}

// Record возвращает партию в формате SGF.
func (u *MatchUseCase) Record(ctx context.Context, matchID string) (string, error) {
	match, err := u.load(ctx, matchID)
	if err != nil {
		return "", err
	}
	return notation.WriteSGF(&match, Result(&match)), nil
}

// act загружает партию под блокировкой и применяет действие игрока.
// Отклонённое действие не сохраняется, но партия с уведомлением возвращается.
func (u *MatchUseCase) act(ctx context.Context, matchID, userID string, apply func(m *game.Match, player int) bool) (game.Match, error) {
	unlock := u.lock(matchID)
	defer unlock()

	match, err := u.load(ctx, matchID)
	if err != nil {
		return game.Match{}, err
	}
	player, ok := match.PlayerNumber(userID)
	if !ok {
		return game.Match{}, errs.ErrPlayerNotInMatch
	}

	if !apply(&match, player) {
		return match, nil
	}

	match.UpdatedAt = now()
	if err := u.save(ctx, match); err != nil {
		u.log.Errorf("failed to save match %s: %v", matchID, err)
		return game.Match{}, err
	}
	u.notifier.Publish(match)
	return match, nil
}

func (u *MatchUseCase) lock(matchID string) func() {
	v, _ := u.locks.LoadOrStore(matchID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (u *MatchUseCase) load(ctx context.Context, matchID string) (game.Match, error) {
	match, err := u.cache.CachedMatch(ctx, matchID)
	switch {
	case err == nil:
		return match, nil
	case !errors.Is(err, errs.ErrMatchNotFound):
		u.log.Warnw("match cache read failed", "match", matchID, "error", err)
	}

	match, err = u.store.GetMatch(ctx, matchID)
	if err != nil {
		return game.Match{}, err
	}
	// испорченный документ в хранилище - ошибка сервера, а не запроса
	if err := engine.Validate(match.State.Points); err != nil {
		u.log.Errorf("stored match %s has a corrupt board: %v", matchID, err)
		return game.Match{}, fmt.Errorf("%w: stored match %s: %v", errs.ErrInternal, matchID, err)
	}
	if err := u.cache.CacheMatch(ctx, match); err != nil {
		u.log.Warnw("match cache write failed", "match", matchID, "error", err)
	}
	return match, nil
}

// save пишет в Mongo, затем обновляет кэш. Ошибка кэша не критична.
func (u *MatchUseCase) save(ctx context.Context, match game.Match) error {
	if err := u.store.SaveMatch(ctx, match); err != nil {
		return err
	}
	if err := u.cache.CacheMatch(ctx, match); err != nil {
		u.log.Warnw("match cache write failed", "match", match.ID, "error", err)
		// старая версия в кэше перекрыла бы сохранённую
		if err := u.cache.Evict(ctx, match.ID); err != nil {
			u.log.Warnw("match cache evict failed", "match", match.ID, "error", err)
		}
	}
	return nil
}
