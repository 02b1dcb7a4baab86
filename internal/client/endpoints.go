package client

import (
	"context"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

const (
	pathRegister = "/auth/register"
	pathLogin    = "/auth/login"
	pathMe       = "/auth/me"
	pathLogout   = "/auth/logout"
	pathProgress = "/progress"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) Result[models.AuthResponse] {
	return Decode[models.AuthResponse](c.Post(ctx, pathRegister, req))
}

func (c *Client) Login(ctx context.Context, userID, password string) Result[models.AuthResponse] {
	req := models.LoginRequest{
		UserID:   userID,
		Password: password,
	}

	return Decode[models.AuthResponse](c.Post(ctx, pathLogin, req))
}

// Me возвращает профиль текущего пользователя. Если сервер прислал профиль
// без обертки {"user": ...}, тело разбирается как сам профиль.
func (c *Client) Me(ctx context.Context) Result[models.MeResponse] {
	raw := c.Get(ctx, pathMe)

	me := Decode[models.MeResponse](raw)
	if me.Error != nil || !me.Data.User.IsZero() {
		return me
	}

	user := Decode[models.User](raw)
	if user.Error != nil {
		return failure[models.MeResponse](user.Error)
	}

	return success(models.MeResponse{User: user.Data}, raw.Status)
}

// Logout завершает сессию на сервере. Токен в хранилище не очищается,
// это делает Session.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	res := c.Post(ctx, pathLogout, nil)
	if res.Error != nil {
		return failure[struct{}](res.Error)
	}

	return success(struct{}{}, res.Status)
}

func (c *Client) ListProgress(ctx context.Context) Result[models.ProgressList] {
	return Decode[models.ProgressList](c.Get(ctx, pathProgress))
}

func (c *Client) AddProgress(
	ctx context.Context,
	subject string,
	minutesStudied int,
	notes string,
) Result[models.ProgressCreated] {
	req := models.ProgressRequest{
		Subject:        subject,
		MinutesStudied: minutesStudied,
		Notes:          notes,
	}

	return Decode[models.ProgressCreated](c.Post(ctx, pathProgress, req))
}
