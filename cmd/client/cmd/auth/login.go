package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
)

var loginName string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере Shopkeeper.

Сессия сохраняется локально. Если неотправленных записей нет,
после входа данные пользователя загружаются с сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		login := promptLogin(loginName)
		password, err := promptPassword("Пароль: ")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		res, err := app.Login(ctx, login, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		output.Success("Вход выполнен: %s (id %s)", res.Session.Login, res.Session.UserID)

		switch {
		case res.Pending > 0:
			output.Warn("Не отправлено на сервер: %d записей, загрузка с сервера пропущена. Выполните: shopkeeper sync push", res.Pending)
		case !res.Pulled:
			output.Warn("Данные с сервера не загружены. Выполните: shopkeeper sync pull")
		}

		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Удаляет сохраненную сессию. Локальные данные пользователя остаются на устройстве.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.Logout(); err != nil {
			return err
		}

		output.Success("Сессия завершена")
		return nil
	},
}

var WhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		local := app.Session()
		if !local.Authenticated() {
			return fmt.Errorf("вход не выполнен. Выполните: shopkeeper auth login")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		sess, err := app.WhoAmI(ctx)
		if err != nil {
			output.Warn("Сервер недоступен, показана локальная сессия: %v", err)
			sess = local
		}

		if output.JSON {
			return output.PrintJSON(map[string]string{"user_id": sess.UserID, "login": sess.Login})
		}
		output.Line("%s (id %s)", sess.Login, sess.UserID)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginName, "login", "l", "", "логин")
}
