package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/auth"
	"shopkeeper/cmd/client/cmd/credit"
	"shopkeeper/cmd/client/cmd/customer"
	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/product"
	"shopkeeper/cmd/client/cmd/sale"
	"shopkeeper/cmd/client/cmd/sync"
	"shopkeeper/cmd/client/cmd/types"
	"shopkeeper/internal/app/client"
	"shopkeeper/internal/app/client/config"
	"shopkeeper/internal/utils/logger"
)

var (
	envFile   string
	serverURL string
	debug     bool
	app       *client.App
)

var rootCmd = &cobra.Command{
	Use:   "shopkeeper",
	Short: "Shopkeeper - касса и склад, работающие без интернета",
	Long: `Shopkeeper ведет товары, покупателей, продажи и долги локально
и отправляет их на сервер, когда появляется соединение.`,
	PersistentPreRunE: setupApp,
	PersistentPostRun: shutdownApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Fail("Ошибка: %v", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg.Env, logger.WithFile(cfg.LogFile), logger.WithLevel(cfg.LogLevel))

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func shutdownApp(_ *cobra.Command, _ []string) {
	if app != nil {
		app.Shutdown()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "файл с переменными окружения")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Shopkeeper")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "подробный лог")
	rootCmd.PersistentFlags().BoolVar(&output.JSON, "json", false, "вывод в формате JSON")

	rootCmd.AddCommand(auth.AuthCmd, product.ProductCmd, customer.CustomerCmd, sale.SaleCmd, credit.CreditCmd, sync.SyncCmd)
}
