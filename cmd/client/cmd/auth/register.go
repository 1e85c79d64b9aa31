package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
)

var registerLogin string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере Shopkeeper.

Для регистрации нужно соединение с сервером. После нее выполните вход.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		output.Header("Регистрация")
		login := promptLogin(registerLogin)

		password, err := promptPassword("Пароль: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}
		if len(password) < 8 {
			return fmt.Errorf("пароль должен содержать минимум 8 символов")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Register(ctx, login, password); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		output.Success("Пользователь %s зарегистрирован", login)
		output.Dim("Теперь войдите: shopkeeper auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerLogin, "login", "l", "", "логин")
}
