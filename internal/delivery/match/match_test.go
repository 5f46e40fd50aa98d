package match

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	"goban/internal/domain/user"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	matchuc "goban/internal/usecase/match"
)

type memoryMatches struct {
	mu      sync.Mutex
	matches map[string][]byte
}

func (m *memoryMatches) SaveMatch(_ context.Context, match game.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	m.matches[match.ID] = data
	return nil
}

func (m *memoryMatches) GetMatch(_ context.Context, id string) (game.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.matches[id]
	if !ok {
		return game.Match{}, errs.ErrMatchNotFound
	}
	var match game.Match
	err := json.Unmarshal(data, &match)
	return match, err
}

func (m *memoryMatches) CacheMatch(ctx context.Context, match game.Match) error {
	return m.SaveMatch(ctx, match)
}

func (m *memoryMatches) CachedMatch(ctx context.Context, id string) (game.Match, error) {
	return m.GetMatch(ctx, id)
}

func (m *memoryMatches) Evict(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
	return nil
}

// cookieUsers считает значение cookie sessionID (без префикса "s-") гостем с таким id и именем.
type cookieUsers struct{}

func (cookieUsers) GetUser(w http.ResponseWriter, r *http.Request) (user.Me, bool) {
	cookie, err := r.Cookie("sessionID")
	if err != nil || !strings.HasPrefix(cookie.Value, "s-") {
		httpresponse.WriteError(w, http.StatusUnauthorized, "no session")
		return user.Me{}, false
	}
	name := strings.TrimPrefix(cookie.Value, "s-")
	return user.Me{UserID: name, Username: name}, true
}

type testServer struct {
	*httptest.Server
	hub   *Hub
	store *memoryMatches
	cache *memoryMatches
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	log := zap.NewNop().Sugar()
	cfg := bootstrap.Config{DefaultBoardSize: 5}
	hub := NewHub(log)
	store := &memoryMatches{matches: map[string][]byte{}}
	cache := &memoryMatches{matches: map[string][]byte{}}
	uc := matchuc.NewMatchUseCase(store, cache, hub, nil, cfg, log)
	handler := NewMatchHandler(cfg, log, uc, cookieUsers{}, hub)

	r := chi.NewRouter()
	handler.Routes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	t.Cleanup(hub.Close)
	return testServer{Server: server, hub: hub, store: store, cache: cache}
}

func (s testServer) do(t *testing.T, method, path, session, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: "sessionID", Value: session})
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var envelope httpresponse.Response[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, resp.StatusCode, envelope.Status)
	return envelope.Body
}

func (s testServer) startMatch(t *testing.T) game.Match {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/matches", "s-alice", `{"board_size": 5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[game.Match](t, resp)

	resp = s.do(t, http.MethodPost, "/matches/"+created.ID+"/join", "s-bob", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[game.Match](t, resp)
}

func TestCreateMatchRequiresSession(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/matches", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/matches", "bogus", `{}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateMatchValidation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/matches", "s-alice", `{"board_size": 40}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/matches", "s-alice", `{"colour": "black"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/matches", "s-alice", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	match := decodeBody[game.Match](t, resp)
	assert.Equal(t, 5, match.BoardSize)
}

func TestMatchFlow(t *testing.T) {
	s := newTestServer(t)
	match := s.startMatch(t)
	base := "/matches/" + match.ID

	resp := s.do(t, http.MethodPost, base+"/join", "s-carol", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodPost, base+"/move", "s-alice", `{"point_id": 12}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	action := decodeBody[ActionResponse](t, resp)
	assert.True(t, action.Accepted)
	assert.Equal(t, "MoveValid", action.Result)
	assert.True(t, action.Match.State.Points[12].OccupiedBy(game.PlayerBlack))

	resp = s.do(t, http.MethodPost, base+"/move", "s-bob", `{"point_id": 12}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	action = decodeBody[ActionResponse](t, resp)
	assert.False(t, action.Accepted)
	assert.Equal(t, "PointOccupied", action.Result)
	assert.Equal(t, "That point is already occupied.", action.Message)

	resp = s.do(t, http.MethodPost, base+"/move", "s-carol", `{"point_id": 0}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodGet, base+"/score", "", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodPost, base+"/pass", "s-bob", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodPost, base+"/pass", "s-alice", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	action = decodeBody[ActionResponse](t, resp)
	assert.Equal(t, "Game over: player 1 wins.", action.Message)

	resp = s.do(t, http.MethodGet, base+"/score", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	score := decodeBody[game.ScoreResponse](t, resp)
	assert.Equal(t, game.PlayerBlack, score.Winner)
	assert.Equal(t, "B+24", score.Result)

	resp = s.do(t, http.MethodGet, base+"/sgf", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-go-sgf", resp.Header.Get("Content-Type"))
	sgf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(sgf), "SZ[5]PB[alice]PW[bob]")
	assert.Contains(t, string(sgf), "RE[B+24]")
	assert.True(t, strings.HasSuffix(string(sgf), ";B[cc];W[];B[])"))
}

func TestResignFlow(t *testing.T) {
	s := newTestServer(t)
	match := s.startMatch(t)
	base := "/matches/" + match.ID

	resp := s.do(t, http.MethodPost, base+"/resign", "s-bob", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPost, base+"/resign", "s-alice", "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	action := decodeBody[ActionResponse](t, resp)
	assert.Equal(t, "The game is over.", action.Message)
}

func TestUnknownMatch(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/matches/nope", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[httpresponse.ErrorResponse](t, resp)
	assert.Equal(t, errs.ErrMatchNotFound.Error(), body.ErrorDescription)

	resp = s.do(t, http.MethodPost, "/matches/nope/move", "s-alice", `{"point_id": 0}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCorruptStoredMatchIsServerError(t *testing.T) {
	s := newTestServer(t)
	match := s.startMatch(t)
	ctx := context.Background()

	match.State.Points = match.State.Points[:3]
	require.NoError(t, s.store.SaveMatch(ctx, match))
	require.NoError(t, s.cache.Evict(ctx, match.ID))

	resp := s.do(t, http.MethodGet, "/matches/"+match.ID, "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody[httpresponse.ErrorResponse](t, resp)
	assert.Equal(t, errs.ErrInternal.Error(), body.ErrorDescription)
}

func TestSuggestWithoutService(t *testing.T) {
	s := newTestServer(t)
	match := s.startMatch(t)

	resp := s.do(t, http.MethodGet, "/matches/"+match.ID+"/suggest", "s-alice", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRecordPDF(t *testing.T) {
	s := newTestServer(t)
	match := s.startMatch(t)
	s.do(t, http.MethodPost, "/matches/"+match.ID+"/move", "s-alice", `{"point_id": 6}`)

	resp := s.do(t, http.MethodGet, "/matches/"+match.ID+"/record.pdf", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestWebSocketReceivesUpdates(t *testing.T) {
	s := newTestServer(t)
	match := s.startMatch(t)

	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/matches/" + match.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snapshot game.Match
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, match.ID, snapshot.ID)
	assert.Len(t, snapshot.Players, 2)
	require.Eventually(t, func() bool { return s.hub.Subscribers(match.ID) == 1 }, time.Second, 10*time.Millisecond)

	resp := s.do(t, http.MethodPost, "/matches/"+match.ID+"/move", "s-alice", `{"point_id": 7}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var update game.Match
	require.NoError(t, conn.ReadJSON(&update))
	require.NotNil(t, update.LastAction)
	assert.Equal(t, game.ActionMove, update.LastAction.Kind)
	assert.True(t, update.State.Points[7].OccupiedBy(game.PlayerBlack))

	conn.Close()
	assert.Eventually(t, func() bool { return s.hub.Subscribers(match.ID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketUnknownMatch(t *testing.T) {
	s := newTestServer(t)

	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/matches/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
