// Vitrina CLI — инструмент командной строки для управления
// товарами, расписаниями публикации и планировщиком через HTTP API.
//
// Использование:
//
//	vitrina [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	product   Управление товарами
//	schedule  Управление расписаниями
//	run       Запуск и мониторинг прогонов
//	timezone  Каталог таймзон
//	settings  Настройки планировщика
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Vitrina/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "vitrina",
		Short:         "Vitrina CLI — product publication scheduler",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewProductCmd(clientFn, outputFn),
		cli.NewScheduleCmd(clientFn, outputFn),
		cli.NewRunCmd(clientFn, outputFn),
		cli.NewTimezoneCmd(clientFn, outputFn),
		cli.NewSettingsCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
