package models

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// AuthResponse тело успешного ответа на регистрацию и вход.
// Сервер может вернуть токен как в accessToken, так и в token.
type AuthResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	Token       string `json:"token,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// BearerToken возвращает accessToken, а если он пуст, то token
func (r AuthResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}

	return r.Token
}

type MeResponse struct {
	User User `json:"user"`
}
