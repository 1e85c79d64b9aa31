package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
	"shopkeeper/internal/app/client/syncer"
	"shopkeeper/internal/domain/pos"
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с сервером",
	Long: `Отправка локальных изменений на сервер и загрузка данных с сервера.

push отправляет записи, которые еще не были сохранены на сервере.
pull заменяет локальные товары, покупателей и кредитные операции данными сервера.`,
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Отправить несинхронизированные записи",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		start := time.Now()
		res, err := app.Push(ctx)
		return report("Отправка", res, err, time.Since(start))
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Загрузить данные с сервера",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		start := time.Now()
		res, err := app.Pull(ctx)
		return report("Загрузка", res, err, time.Since(start))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние синхронизации",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		st := app.Status(ctx)

		if output.JSON {
			return output.PrintJSON(map[string]any{
				"user_id":   st.Session.UserID,
				"online":    st.Online,
				"last_pull": st.LastPull,
				"pending":   st.Pending,
			})
		}

		output.Header("Синхронизация")
		if st.Session.Authenticated() {
			output.Line("Пользователь:   %s (id %s)", st.Session.Login, st.Session.UserID)
		} else {
			output.Warn("Вход не выполнен")
		}
		if st.Online {
			output.Success("Сервер доступен")
		} else {
			output.Warn("Нет соединения с сервером")
		}

		if st.LastPull.LastSync.IsZero() {
			output.Line("Последняя загрузка: никогда")
		} else {
			output.Line("Последняя загрузка: %s", st.LastPull.LastSync.Local().Format("2006-01-02 15:04:05"))
		}
		for _, e := range st.LastPull.Errors {
			output.Warn("%s", e)
		}

		kinds := make([]string, 0, len(st.Pending))
		for k := range st.Pending {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			output.Line("Ожидают отправки (%s): %d", k, st.Pending[k])
		}
		return nil
	},
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Фоновая синхронизация до остановки (Ctrl+C)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		output.Line("Автосинхронизация запущена, для остановки нажмите Ctrl+C")
		return app.Run()
	},
}

func report(op string, res syncer.Result, err error, took time.Duration) error {
	if err != nil {
		if errors.Is(err, pos.ErrUnauthenticated) {
			return fmt.Errorf("требуется вход. Выполните: shopkeeper auth login")
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if output.JSON {
		return output.PrintJSON(res)
	}

	if res.Success {
		output.Success("%s завершена: %d записей за %s", op, res.Synced, took.Round(time.Millisecond))
		return nil
	}

	output.Warn("%s завершена с ошибками: %d записей", op, res.Synced)
	for _, e := range res.Errors {
		output.Line("  - %s", e)
	}
	return nil
}

func init() {
	SyncCmd.AddCommand(pushCmd, pullCmd, statusCmd, autoCmd)
}
