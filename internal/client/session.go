package client

import (
	"context"
	"sync"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

// State состояние сессии с точки зрения клиента
type State int

const (
	// StateAnonymous токена нет
	StateAnonymous State = iota
	// StateAuthenticated токен есть, но сервер его еще не подтвердил
	StateAuthenticated
	// StateVerified токен подтвержден успешным запросом профиля
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// Session владеет токеном и ведет жизненный цикл сессии:
// anonymous -> authenticated -> verified -> anonymous.
// Начальное состояние определяется наличием токена в хранилище клиента.
type Session struct {
	mu        sync.Mutex
	client    *Client
	state     State
	user      *models.User
	listeners []func(from, to State)
}

func NewSession(client *Client) *Session {
	s := &Session{
		client: client,
		state:  StateAnonymous,
	}

	if client.store.Load() != "" {
		s.state = StateAuthenticated
	}

	return s
}

func (s *Session) Client() *Client {
	return s.client
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// User возвращает профиль, полученный при входе или проверке токена
func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.User{}, false
	}

	return *s.user, true
}

func (s *Session) HasToken() bool {
	return s.client.store.Load() != ""
}

// OnChange регистрирует обработчик смены состояния. Обработчики вызываются
// вне блокировки сессии.
func (s *Session) OnChange(fn func(from, to State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

func (s *Session) Login(ctx context.Context, userID, password string) Result[models.AuthResponse] {
	res := s.client.Login(ctx, userID, password)
	if res.Error != nil {
		return res
	}

	token := res.Data.BearerToken()
	if token == "" {
		return failure[models.AuthResponse](&APIError{
			Status:  res.Status,
			Message: ErrNoToken.Error(),
			Err:     ErrNoToken,
		})
	}

	s.authenticate(token, res.Data.User)

	return res
}

// Register регистрирует пользователя. Если сервер сразу выдал токен,
// сессия становится authenticated, иначе остается в прежнем состоянии.
func (s *Session) Register(ctx context.Context, req models.RegisterRequest) Result[models.AuthResponse] {
	res := s.client.Register(ctx, req)
	if res.Error != nil {
		return res
	}

	if token := res.Data.BearerToken(); token != "" {
		s.authenticate(token, res.Data.User)
	}

	return res
}

// Verify запрашивает профиль. Успех переводит сессию в verified,
// любая ошибка очищает токен.
func (s *Session) Verify(ctx context.Context) Result[models.MeResponse] {
	res := s.client.Me(ctx)
	if res.Error != nil {
		s.reset()

		return res
	}

	user := res.Data.User

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.transition(StateVerified)

	return res
}

// Logout завершает сессию на сервере и очищает токен независимо от ответа
func (s *Session) Logout(ctx context.Context) Result[struct{}] {
	res := s.client.Logout(ctx)

	s.reset()

	return res
}

func (s *Session) ListProgress(ctx context.Context) Result[models.ProgressList] {
	res := s.client.ListProgress(ctx)
	s.ObserveError(res.Error)

	return res
}

func (s *Session) AddProgress(
	ctx context.Context,
	subject string,
	minutesStudied int,
	notes string,
) Result[models.ProgressCreated] {
	res := s.client.AddProgress(ctx, subject, minutesStudied, notes)
	s.ObserveError(res.Error)

	return res
}

// ObserveError очищает токен, если сервер ответил 401
func (s *Session) ObserveError(err *APIError) {
	if err.IsUnauthorized() {
		s.reset()
	}
}

func (s *Session) authenticate(token string, user *models.User) {
	s.client.store.Save(token)

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.transition(StateAuthenticated)
}

func (s *Session) reset() {
	s.client.store.Clear()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.transition(StateAnonymous)
}

func (s *Session) transition(to State) {
	s.mu.Lock()
	from := s.state
	s.state = to
	listeners := append([]func(from, to State){}, s.listeners...)
	s.mu.Unlock()

	if from == to {
		return
	}

	for _, fn := range listeners {
		fn(from, to)
	}
}
