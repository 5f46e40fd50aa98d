package auth

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"goban/internal/domain/user"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	authUC "goban/internal/usecase/auth"
	"goban/internal/utils"
)

const (
	SessionCookie = "sessionID"
	sessionMaxAge = 10 * time.Hour
)

type AuthHandler struct {
	usecaseHandler *authUC.AuthUseCase
	log            *zap.SugaredLogger
	secureCookie   bool
}

func NewAuthHandler(usecase *authUC.AuthUseCase, log *zap.SugaredLogger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: usecase,
		log:            log,
		secureCookie:   secureCookie,
	}
}

// Login godoc
// @Summary Вход игрока
// @Description Создаёт гостевую сессию и устанавливает cookie sessionID
// @Tags auth
// @Accept json
// @Produce json
// @Param login body user.LoginRequest true "Имя игрока"
// @Success 200 {object} user.Me
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginData user.LoginRequest
	if err := utils.DecodeJSONRequest(r, &loginData); err != nil {
		a.log.Error("Login: malformed JSON: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	sessionID, me, err := a.usecaseHandler.LoginUser(r.Context(), loginData.Username)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidUsername) {
			a.log.Warnf("Login: %v", err)
			httpresponse.WriteError(w, http.StatusBadRequest, "Некорректное имя игрока")
			return
		}
		a.log.Error("Login: internal error: ", err)
		httpresponse.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(sessionMaxAge),
		Secure:   a.secureCookie,
		HttpOnly: true,
	})

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, me)
}

// Logout godoc
// @Summary Выход пользователя
// @Description Удаляет сессию пользователя по cookie sessionID
// @Tags auth
// @Produce json
// @Success 200 {string} string "OK"
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /logout [delete]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookie)
	if err != nil {
		a.log.Warn("Logout: no cookie provided")
		httpresponse.WriteError(w, http.StatusUnauthorized, http.ErrNoCookie.Error())
		return
	}

	if err := a.usecaseHandler.LogoutUser(r.Context(), sessionCookie.Value); err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			httpresponse.WriteError(w, http.StatusUnauthorized, "Сессия не найдена или истекла")
			return
		}
		a.log.Errorf("Logout: failed to logout sessionID=%s: %v", sessionCookie.Value, err)
		httpresponse.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// Me godoc
// @Summary Текущий игрок
// @Tags auth
// @Produce json
// @Success 200 {object} user.Me
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	me, ok := a.GetUser(w, r)
	if !ok {
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, me)
}

// GetUser возвращает гостя текущей сессии.
// Если сессия просрочена или не найдена, пишет ошибку в http-ответ и возвращает false.
func (a *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) (user.Me, bool) {
	sessionCookie, err := r.Cookie(SessionCookie)
	if err != nil {
		a.log.Warn("GetUser: no sessionID cookie")
		httpresponse.WriteError(w, http.StatusUnauthorized, "Не найдена cookie sessionID")
		return user.Me{}, false
	}

	me, err := a.usecaseHandler.GetUserFromSession(r.Context(), sessionCookie.Value)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			a.log.Warn("GetUser: session not found or expired")
			httpresponse.WriteError(w, http.StatusUnauthorized, "Сессия не найдена или истекла")
			return user.Me{}, false
		}
		a.log.Error("GetUser: internal error: ", err)
		httpresponse.WriteError(w, http.StatusInternalServerError, err.Error())
		return user.Me{}, false
	}

	return me, true
}
