package models

import "time"

const dateTimeLayout = "2006-01-02 15:04:05"

// User представляет профиль пользователя, как его отдает сервер
type User struct {
	ID        ID     `json:"id,omitempty"`
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"-"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DisplayName возвращает имя для отображения: username, затем userId, затем name
func (u User) DisplayName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.UserID != "":
		return u.UserID
	default:
		return u.Name
	}
}

// IsZero сообщает, что профиль не содержит ни одного идентифицирующего поля
func (u User) IsZero() bool {
	return u.ID.IsZero() && u.UserID == "" && u.Username == "" && u.Name == "" && u.Email == ""
}

// Registered разбирает createdAt. Поле хранится в том виде, в котором его
// прислал сервер, поэтому неизвестный формат дает false.
func (u User) Registered() (time.Time, bool) {
	return parseTimestamp(u.CreatedAt)
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"     binding:"required"`
	Email    string `json:"email"    validate:"required,email"       binding:"required"`
	Password string `json:"password" validate:"required,min=6"       binding:"required"`
	UserID   string `json:"userId"   validate:"required,min=3,max=50" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return Validate(r)
}

type LoginRequest struct {
	UserID   string `json:"userId"   validate:"required" binding:"required"`
	Password string `json:"password" validate:"required" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return Validate(r)
}
