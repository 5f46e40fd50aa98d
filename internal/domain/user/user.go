package user

// @name LoginRequest
type LoginRequest struct {
	Username string `json:"Username"`
}

// Me гость текущей сессии. UserID выдаётся при входе и не совпадает с именем,
// имя нужно только для отображения.
// @name Me
type Me struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
