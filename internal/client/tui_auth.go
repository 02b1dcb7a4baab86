package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

type registerForm struct {
	Name            string
	UserID          string
	Email           string
	Password        string
	ConfirmPassword string
}

func (t *TUI) createLoginPage() tview.Primitive {
	loginForm := tview.NewForm()

	loginForm.AddInputField("Идентификатор", defaultUserID, standardFieldWidth, nil, nil)
	loginForm.AddPasswordField("Пароль", defaultPassword, standardFieldWidth, '*', nil)

	loginForm.AddButton("Войти", func() {
		req := models.LoginRequest{
			UserID:   strings.TrimSpace(formText(loginForm, "Идентификатор")),
			Password: formText(loginForm, "Пароль"),
		}

		if err := req.Validate(); err != nil {
			t.showError(err.Error())

			return
		}

		t.performLogin(req)
	})

	loginForm.AddButton("Регистрация", func() {
		t.showPage(pageRegister)
	})

	loginForm.SetTitle("LinkingLink - Вход").SetBorder(true)

	return centered(loginForm, formWidth)
}

func (t *TUI) performLogin(req models.LoginRequest) {
	background(t, func(ctx context.Context) Result[models.AuthResponse] {
		return t.session.Login(ctx, req.UserID, req.Password)
	}, func(res Result[models.AuthResponse]) {
		if res.Error != nil {
			t.logger.Warnf("вход не выполнен: %v", res.Error)
			t.showError(DescribeError(OpLogin, res.Error))

			return
		}

		t.showHome()
	})
}

func (t *TUI) createRegisterPage() tview.Primitive {
	form := tview.NewForm()

	form.AddInputField("Имя", "", standardFieldWidth, nil, nil)
	form.AddInputField("Идентификатор", "", standardFieldWidth, nil, nil)
	form.AddInputField("Email", "", standardFieldWidth, nil, nil)
	form.AddPasswordField("Пароль", "", standardFieldWidth, '*', nil)
	form.AddPasswordField("Подтверждение пароля", "", standardFieldWidth, '*', nil)

	form.AddButton("Зарегистрироваться", func() {
		data := registerForm{
			Name:            strings.TrimSpace(formText(form, "Имя")),
			UserID:          strings.TrimSpace(formText(form, "Идентификатор")),
			Email:           strings.TrimSpace(formText(form, "Email")),
			Password:        formText(form, "Пароль"),
			ConfirmPassword: formText(form, "Подтверждение пароля"),
		}

		if msg := data.problem(); msg != "" {
			t.showError(msg)

			return
		}

		t.performRegistration(data.request())
	})

	form.AddButton("Назад", func() {
		t.showPage(pageLogin)
	})

	form.SetTitle("LinkingLink - Регистрация").SetBorder(true)

	return centered(form, formWidth)
}

func (t *TUI) performRegistration(req models.RegisterRequest) {
	background(t, func(ctx context.Context) Result[models.AuthResponse] {
		return t.session.Register(ctx, req)
	}, func(res Result[models.AuthResponse]) {
		if res.Error != nil {
			t.logger.Warnf("регистрация не выполнена: %v", res.Error)
			t.showError(DescribeError(OpRegister, res.Error))

			return
		}

		if t.session.State() == StateAnonymous {
			t.showDialog(
				"Успешная регистрация",
				fmt.Sprintf("Пользователь %s зарегистрирован, войдите в систему", req.UserID),
				"OK",
				func() { t.showPage(pageLogin) },
			)

			return
		}

		t.showHome()
	})
}

// problem возвращает текст первой ошибки заполнения формы или пустую строку
func (f registerForm) problem() string {
	if f.Name == "" || f.UserID == "" || f.Email == "" || f.Password == "" {
		return "Заполните все поля"
	}

	if f.Password != f.ConfirmPassword {
		return "Пароли не совпадают"
	}

	if err := f.request().Validate(); err != nil {
		return err.Error()
	}

	return ""
}

func (f registerForm) request() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		UserID:   f.UserID,
	}
}

func (t *TUI) logout() {
	background(t, func(ctx context.Context) Result[struct{}] {
		return t.session.Logout(ctx)
	}, func(res Result[struct{}]) {
		if res.Error != nil {
			t.logger.Warnf("выход на сервере не выполнен: %v", res.Error)
		}

		t.entries = nil
		t.showPage(pageLogin)
	})
}

func formText(form *tview.Form, label string) string {
	if item := form.GetFormItemByLabel(label); item != nil {
		if field, ok := item.(*tview.InputField); ok {
			return field.GetText()
		}
	}

	return ""
}

func centered(p tview.Primitive, width int) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(p, width, 1, true).
		AddItem(nil, 0, 1, false)
}
