package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

const (
	pingTimeout   = 5 * time.Second
	schemaTimeout = 10 * time.Second

	uniqueViolation = "23505"
)

var ErrUserNotFound = errors.New("пользователь не найден")

type PostgresRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresRepository(dsn string, logger logger.Logger) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()

		return nil, pingErr
	}

	return NewPostgresRepositoryFromDB(db, logger), nil
}

// NewPostgresRepositoryFromDB оборачивает уже открытое соединение
func NewPostgresRepositoryFromDB(db *sql.DB, logger logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) InitSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS progress (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			subject VARCHAR(100) NOT NULL,
			minutes_studied INTEGER NOT NULL CHECK (minutes_studied > 0),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)
	`)

	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.UserID, user.Name, user.Email, user.Password, user.CreatedAt).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrUserAlreadyExists
		}

		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	return r.getUser(ctx, "user_id", userID)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, "id", id)
}

// getUser ищет пользователя по одному из уникальных столбцов
func (r *PostgresRepository) getUser(ctx context.Context, column string, value any) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, email, password_hash, created_at
		FROM users
		WHERE %s = $1
	`, column)

	var (
		user      models.User
		id        int64
		createdAt time.Time
	)

	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&id, &user.UserID, &user.Name, &user.Email, &user.Password, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	user.ID = models.NewID(id)
	user.CreatedAt = createdAt.UTC().Format(time.RFC3339)

	return &user, nil
}

func (r *PostgresRepository) CreateEntry(
	ctx context.Context,
	userID int64,
	req models.ProgressRequest,
	createdAt time.Time,
) (models.ProgressEntry, error) {
	entry := models.NewProgressEntry(req, createdAt)

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO progress (user_id, subject, minutes_studied, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, req.Subject, req.MinutesStudied, req.Notes, createdAt).Scan(&id)
	if err != nil {
		return models.ProgressEntry{}, err
	}
	entry.ID = models.NewID(id)

	return entry, nil
}

// ListEntries возвращает записи пользователя в порядке добавления
func (r *PostgresRepository) ListEntries(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject, minutes_studied, notes, created_at
		FROM progress
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.ProgressEntry, 0)

	for rows.Next() {
		var (
			req       models.ProgressRequest
			id        int64
			createdAt time.Time
		)

		if scanErr := rows.Scan(&id, &req.Subject, &req.MinutesStudied, &req.Notes, &createdAt); scanErr != nil {
			return nil, scanErr
		}

		entry := models.NewProgressEntry(req, createdAt)
		entry.ID = models.NewID(id)
		result = append(result, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, rowsErr
	}

	return result, nil
}
