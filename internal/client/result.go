package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequestFailed    = errors.New("запрос не выполнен")
	ErrInvalidResponse  = errors.New("неверный ответ сервера")
	ErrUnexpectedStatus = errors.New("неожиданный статус ответа")
	ErrNoToken          = errors.New("в ответе нет токена")
)

// APIError нормализованная ошибка запроса.
// Status равен 0, если ответ от сервера не был получен.
type APIError struct {
	Status  int             `json:"status,omitempty"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Err     error           `json:"-"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized сообщает, что сервер отклонил токен
func (e *APIError) IsUnauthorized() bool {
	return e != nil && e.Status == http.StatusUnauthorized
}

// Result результат любого запроса. Успехом считается Error == nil:
// ответ 2xx с пустым телом дает нулевое Data и nil Error, и это успех.
// При Error != nil поле Data содержит нулевое значение.
type Result[T any] struct {
	Data   T
	Error  *APIError
	Status int
}

func (r Result[T]) OK() bool {
	return r.Error == nil
}

func success[T any](data T, status int) Result[T] {
	return Result[T]{Data: data, Status: status}
}

func failure[T any](err *APIError) Result[T] {
	return Result[T]{Error: err, Status: err.Status}
}

// Decode разбирает тело успешного ответа в T. Пустое тело дает нулевое
// значение, неразбираемое тело превращается в APIError.
func Decode[T any](res Result[json.RawMessage]) Result[T] {
	if res.Error != nil {
		return failure[T](res.Error)
	}

	var data T
	if len(bytes.TrimSpace(res.Data)) == 0 {
		return success(data, res.Status)
	}

	if err := json.Unmarshal(res.Data, &data); err != nil {
		return failure[T](&APIError{
			Status:  res.Status,
			Message: ErrInvalidResponse.Error(),
			Data:    rawPayload(res.Data),
			Err:     fmt.Errorf("%w: %w", ErrInvalidResponse, err),
		})
	}

	return success(data, res.Status)
}

// transportError описывает сбой, при котором ответ не был получен
func transportError(err error) *APIError {
	return &APIError{
		Message: ErrRequestFailed.Error(),
		Err:     fmt.Errorf("%w: %w", ErrRequestFailed, err),
	}
}

// toAPIError строит ошибку по ответу сервера со статусом не из 2xx.
// Сообщение берется из поля error, затем message, иначе общее.
func toAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: ErrRequestFailed.Error(),
		Data:    rawPayload(body),
		Err:     fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, http.StatusText(status)),
	}

	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	for _, field := range []json.RawMessage{payload.Error, payload.Message} {
		var msg string
		if json.Unmarshal(field, &msg) == nil && msg != "" {
			apiErr.Message = msg

			break
		}
	}

	return apiErr
}

// rawPayload возвращает тело как JSON. Тело, не являющееся JSON,
// кодируется строкой.
func rawPayload(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	if json.Valid(body) {
		return json.RawMessage(bytes.Clone(body))
	}

	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}

	return quoted
}
