package match

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	"goban/internal/domain/user"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	"goban/internal/legality"
	matchuc "goban/internal/usecase/match"
	"goban/internal/utils"
)

// UserIdentifier достаёт гостя из запроса. Если его нет, сам пишет ответ и возвращает false.
type UserIdentifier interface {
	GetUser(w http.ResponseWriter, r *http.Request) (user.Me, bool)
}

type MatchHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	matchUC  *matchuc.MatchUseCase
	auth     UserIdentifier
	hub      *Hub
	upgrader websocket.Upgrader
}

// @name ActionResponse
type ActionResponse struct {
	Accepted bool       `json:"accepted"`
	Result   string     `json:"result"`
	Message  string     `json:"message"`
	Match    game.Match `json:"match"`
}

func NewMatchHandler(cfg bootstrap.Config, log *zap.SugaredLogger, matchUC *matchuc.MatchUseCase, auth UserIdentifier, hub *Hub) *MatchHandler {
	return &MatchHandler{
		cfg:      cfg,
		log:      log,
		matchUC:  matchUC,
		auth:     auth,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *MatchHandler) Routes(r chi.Router) {
	r.Route("/matches", func(r chi.Router) {
		r.Post("/", h.HandleCreateMatch)
		r.Route("/{matchID}", func(r chi.Router) {
			r.Get("/", h.HandleGetMatch)
			r.Post("/join", h.HandleJoinMatch)
			r.Post("/move", h.HandleMove)
			r.Post("/pass", h.HandlePass)
			r.Post("/resign", h.HandleResign)
			r.Get("/score", h.HandleScore)
			r.Get("/suggest", h.HandleSuggest)
			r.Get("/sgf", h.HandleSGF)
			r.Get("/record.pdf", h.HandleRecordPDF)
			r.Get("/ws", h.HandleWebSocket)
		})
	})
}

// HandleCreateMatch godoc
// @Summary Создание партии
// @Description Создаёт партию, создатель занимает место чёрных (или белых, если creator_is_white).
// @Tags match
// @Accept json
// @Produce json
// @Param match body game.CreateMatchRequest false "Параметры партии"
// @Success 201 {object} game.Match
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /matches [post]
func (h *MatchHandler) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	me, ok := h.auth.GetUser(w, r)
	if !ok {
		return
	}

	var req game.CreateMatchRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Warnf("HandleCreateMatch: %v", err)
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.matchUC.CreateMatch(r.Context(), me, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, match)
}

// HandleJoinMatch godoc
// @Summary Присоединиться к партии
// @Tags match
// @Produce json
// @Param matchID path string true "ID партии"
// @Success 200 {object} game.Match
// @Failure 404 {object} httpresponse.ErrorResponse
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /matches/{matchID}/join [post]
func (h *MatchHandler) HandleJoinMatch(w http.ResponseWriter, r *http.Request) {
	me, ok := h.auth.GetUser(w, r)
	if !ok {
		return
	}

	match, err := h.matchUC.JoinMatch(r.Context(), chi.URLParam(r, "matchID"), me)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, match)
}

// HandleGetMatch godoc
// @Summary Состояние партии
// @Tags match
// @Produce json
// @Param matchID path string true "ID партии"
// @Success 200 {object} game.Match
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /matches/{matchID} [get]
func (h *MatchHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.matchUC.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, match)
}

// HandleMove godoc
// @Summary Ход
// @Description Нарушение правил не ошибка: ответ 422 с accepted=false и сообщением.
// @Tags match
// @Accept json
// @Produce json
// @Param matchID path string true "ID партии"
// @Param move body game.MoveRequest true "Пункт доски"
// @Success 200 {object} ActionResponse
// @Failure 422 {object} ActionResponse
// @Router /matches/{matchID}/move [post]
func (h *MatchHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	me, ok := h.auth.GetUser(w, r)
	if !ok {
		return
	}

	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Warnf("HandleMove: %v", err)
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, result, err := h.matchUC.PlayMove(r.Context(), chi.URLParam(r, "matchID"), me.UserID, req.PointID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, match, result == legality.MoveValid, result.String())
}

// HandlePass godoc
// @Summary Пас
// @Tags match
// @Produce json
// @Param matchID path string true "ID партии"
// @Success 200 {object} ActionResponse
// @Failure 422 {object} ActionResponse
// @Router /matches/{matchID}/pass [post]
func (h *MatchHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	me, ok := h.auth.GetUser(w, r)
	if !ok {
		return
	}

	match, result, err := h.matchUC.Pass(r.Context(), chi.URLParam(r, "matchID"), me.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, match, result == legality.PassValid, result.String())
}

// HandleResign godoc
// @Summary Сдаться
// @Tags match
// @Produce json
// @Param matchID path string true "ID партии"
// @Success 200 {object} ActionResponse
// @Failure 422 {object} ActionResponse
// @Router /matches/{matchID}/resign [post]
func (h *MatchHandler) HandleResign(w http.ResponseWriter, r *http.Request) {
	me, ok := h.auth.GetUser(w, r)
	if !ok {
		return
	}

	match, result, err := h.matchUC.Resign(r.Context(), chi.URLParam(r, "matchID"), me.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, match, result == legality.ResignValid, result.String())
}

// HandleScore godoc
// @Summary Подсчёт очков
// @Tags match
// @Produce json
// @Param matchID path string true "ID партии"
// @Success 200 {object} game.ScoreResponse
// @Failure 409 {object} httpresponse.ErrorResponse "партия ещё идёт"
// @Router /matches/{matchID}/score [get]
func (h *MatchHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.matchUC.Score(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, score)
}

// HandleSuggest godoc
// @Summary Подсказка хода
// @Tags match
// @Produce json
// @Param matchID path string true "ID партии"
// @Success 200 {object} game.Suggestion
// @Failure 503 {object} httpresponse.ErrorResponse
// @Router /matches/{matchID}/suggest [get]
func (h *MatchHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	me, ok := h.auth.GetUser(w, r)
	if !ok {
		return
	}

	suggestion, err := h.matchUC.Suggest(r.Context(), chi.URLParam(r, "matchID"), me.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, suggestion)
}

// HandleSGF отдаёт запись партии как файл .sgf
func (h *MatchHandler) HandleSGF(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	record, err := h.matchUC.Record(r.Context(), matchID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+matchID+`.sgf"`)
	_, _ = w.Write([]byte(record))
}

func (h *MatchHandler) HandleRecordPDF(w http.ResponseWriter, r *http.Request) {
	match, err := h.matchUC.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := writeRecordPDF(&buf, match, matchuc.Result(&match)); err != nil {
		h.log.Errorf("HandleRecordPDF: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// HandleWebSocket подписывает соединение на обновления партии.
// Первым сообщением приходит текущее состояние.
func (h *MatchHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	if _, err := h.matchUC.GetMatch(r.Context(), matchID); err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("HandleWebSocket: upgrade failed: ", err)
		return
	}
	h.hub.serve(conn, matchID, func() (game.Match, error) {
		return h.matchUC.GetMatch(r.Context(), matchID)
	})
}

func (h *MatchHandler) writeAction(w http.ResponseWriter, match game.Match, accepted bool, result string) {
	status := http.StatusOK
	if !accepted {
		status = http.StatusUnprocessableEntity
	}
	httpresponse.WriteResponseWithStatus(w, status, ActionResponse{
		Accepted: accepted,
		Result:   result,
		Message:  match.Notification,
		Match:    match,
	})
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{errs.ErrMatchNotFound, http.StatusNotFound},
	{errs.ErrPlayerNotInMatch, http.StatusForbidden},
	{errs.ErrMatchFull, http.StatusConflict},
	{errs.ErrMatchInProgress, http.StatusConflict},
	{errs.ErrInvalidBoard, http.StatusBadRequest},
	{errs.ErrSessionNotFound, http.StatusUnauthorized},
	{errs.ErrSuggestionUnavailable, http.StatusServiceUnavailable},
	{errs.ErrMalformedSuggestion, http.StatusBadGateway},
}

func (h *MatchHandler) writeError(w http.ResponseWriter, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			httpresponse.WriteError(w, e.status, err.Error())
			return
		}
	}
	h.log.Errorf("unexpected error: %v", err)
	httpresponse.WriteError(w, http.StatusInternalServerError, errs.ErrInternal.Error())
}
