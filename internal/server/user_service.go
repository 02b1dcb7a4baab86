package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/parsa-mehek/LinkingLink-client/internal/crypto"
	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

//go:generate mockgen -source=user_service.go -destination=mock_user_repository.go -package=server

var (
	ErrUserAlreadyExists = errors.New("пользователь с таким идентификатором или email уже существует")
	ErrInvalidPassword   = errors.New("неверный пароль")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type UserService struct {
	repo   UserRepository
	logger logger.Logger
	now    func() time.Time
}

func NewUserService(repo UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateUser регистрирует пользователя. Занятый userId или email дает ErrUserAlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.ensureAvailable(ctx, req.UserID, email); err != nil {
		return nil, err
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = models.NewID(id)

	s.logger.Infof("Зарегистрирован пользователь %s (id=%d)", user.UserID, id)

	return user, nil
}

func (s *UserService) ensureAvailable(ctx context.Context, userID, email string) error {
	lookups := []func() (*models.User, error){
		func() (*models.User, error) { return s.repo.GetByUserID(ctx, userID) },
		func() (*models.User, error) { return s.repo.GetByEmail(ctx, email) },
	}

	for _, lookup := range lookups {
		existing, err := lookup()
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return err
		}

		if existing != nil {
			return ErrUserAlreadyExists
		}
	}

	return nil
}

func (s *UserService) CheckCredentials(ctx context.Context, userID string, password string) (*models.User, error) {
	user, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	valid := crypto.VerifyPassword(password, user.Password)
	if !valid {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
