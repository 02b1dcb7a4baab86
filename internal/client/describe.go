package client

import (
	"errors"
	"net/http"
)

// Операции, для которых DescribeError подбирает сообщение
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpProfile  = "me"
	OpLogout   = "logout"
	OpProgress = "progress"
)

const (
	msgInvalidCredentials = "Неверный идентификатор пользователя или пароль"
	msgAlreadyExists      = "Пользователь с таким идентификатором или email уже существует"
	msgSessionExpired     = "Сессия истекла, войдите снова"
	msgUnreachable        = "Не удалось связаться с сервером"
)

// DescribeError переводит APIError в сообщение для пользователя.
// Коды 401 и 409 получают собственные тексты, остальные ошибки
// показывают нормализованное сообщение сервера.
func DescribeError(op string, err *APIError) string {
	if err == nil {
		return ""
	}

	switch {
	case err.Status == 0 && errors.Is(err, ErrRequestFailed):
		return msgUnreachable
	case err.Status == http.StatusUnauthorized && op == OpLogin:
		return msgInvalidCredentials
	case err.Status == http.StatusUnauthorized:
		return msgSessionExpired
	case err.Status == http.StatusConflict && op == OpRegister:
		return msgAlreadyExists
	}

	if err.Message == "" {
		return ErrRequestFailed.Error()
	}

	return err.Message
}
