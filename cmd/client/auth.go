package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parsa-mehek/LinkingLink-client/internal/client"
	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

func newRegisterCmd(a *app) *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Зарегистрировать пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			res := a.session.Register(cmd.Context(), req)
			if res.Error != nil {
				return a.report(client.OpRegister, res.Error)
			}

			if a.session.State() == client.StateAnonymous {
				fmt.Fprintf(a.out, "Пользователь %s зарегистрирован. Выполните вход: linkinglink login\n", req.UserID)

				return nil
			}

			fmt.Fprintf(a.out, "Пользователь %s зарегистрирован, вход выполнен\n", req.UserID)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Name, "name", "", "имя")
	flags.StringVar(&req.UserID, "user", "", "идентификатор пользователя")
	flags.StringVar(&req.Email, "email", "", "email")
	flags.StringVar(&req.Password, "password", "", "пароль")

	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Войти и сохранить токен",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			res := a.session.Login(cmd.Context(), req.UserID, req.Password)
			if res.Error != nil {
				return a.report(client.OpLogin, res.Error)
			}

			name := req.UserID
			if res.Data.User != nil {
				name = res.Data.User.DisplayName()
			}

			fmt.Fprintf(a.out, "Вход выполнен: %s\n", name)

			return nil
		},
	}

	cmd.Flags().StringVar(&req.UserID, "user", "", "идентификатор пользователя")
	cmd.Flags().StringVar(&req.Password, "password", "", "пароль")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выйти и удалить сохраненный токен",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.session.HasToken() {
				fmt.Fprintln(a.out, "Вход не выполнен")

				return nil
			}

			res := a.session.Logout(cmd.Context())
			if res.Error != nil {
				a.log.Warnf("выход на сервере не выполнен: %v", res.Error)
			}

			fmt.Fprintln(a.out, "Выход выполнен, токен удален")

			return nil
		},
	}
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Показать профиль текущего пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.session.HasToken() {
				fmt.Fprintln(a.errOut, "Вход не выполнен")

				return errReported
			}

			res := a.session.Verify(cmd.Context())
			if res.Error != nil {
				return a.report(client.OpProfile, res.Error)
			}

			user := res.Data.User
			fmt.Fprintf(a.out, "Пользователь: %s\n", user.DisplayName())
			fmt.Fprintf(a.out, "Имя: %s\n", notesOrDash(user.Name))
			fmt.Fprintf(a.out, "Идентификатор: %s\n", user.UserID)
			fmt.Fprintf(a.out, "Email: %s\n", user.Email)

			return nil
		},
	}
}
