package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parsa-mehek/LinkingLink-client/internal/client"
	"github.com/parsa-mehek/LinkingLink-client/internal/storage"
	"github.com/parsa-mehek/LinkingLink-client/pkg/config"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

var version = "v1.0.0"

// errReported означает, что причина ошибки уже выведена пользователю
var errReported = errors.New("команда завершилась с ошибкой")

type app struct {
	v       *viper.Viper
	cfgFile string
	out     io.Writer
	errOut  io.Writer

	cfg     *config.ClientConfig
	log     logger.Logger
	store   storage.Store
	session *client.Session
}

// newRootCmd возвращает корневую команду и функцию освобождения ресурсов,
// которую нужно вызвать после выполнения команды
func newRootCmd(out, errOut io.Writer) (*cobra.Command, func()) {
	a := &app{
		v:      config.NewClientViper(),
		out:    out,
		errOut: errOut,
	}

	rootCmd := &cobra.Command{
		Use:               "linkinglink",
		Short:             "Клиент LinkingLink: учет учебного прогресса",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "путь к файлу конфигурации (по умолчанию ~/.linkinglink/config.yaml)")
	flags.String("api-url", "", "базовый адрес API (LL_API_BASE_URL, API_URL)")
	flags.String("storage", "", "хранилище токена: memory, file или sqlite")
	flags.String("storage-path", "", "путь к файлу хранилища токена")
	flags.Bool("verbose", false, "подробный вывод HTTP-запросов в stderr")

	_ = a.v.BindPFlag(config.KeyAPIBaseURL, flags.Lookup("api-url"))
	_ = a.v.BindPFlag(config.KeyStorageDriver, flags.Lookup("storage"))
	_ = a.v.BindPFlag(config.KeyStoragePath, flags.Lookup("storage-path"))
	_ = a.v.BindPFlag(config.KeyLogVerbose, flags.Lookup("verbose"))

	rootCmd.AddCommand(
		newTUICmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newMeCmd(a),
		newProgressCmd(a),
	)

	return rootCmd, a.close
}

// setup собирает цепочку конфигурация -> хранилище -> клиент -> сессия
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClientConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = a.newLogger(cmd)

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path,
		storage.WithErrorHandler(func(op string, storeErr error) {
			a.log.Warnf("хранилище токена (%s): %v", op, storeErr)
		}),
	)
	if err != nil {
		return fmt.Errorf("ошибка открытия хранилища токена: %w", err)
	}
	a.store = store

	opts := []client.Option{
		client.WithTimeout(cfg.API.Timeout),
		client.WithInsecureSkipVerify(cfg.API.InsecureSkipVerify),
	}
	if cfg.Log.Verbose {
		opts = append(opts, client.WithLogger(
			slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	}

	a.session = client.NewSession(client.NewClient(cfg.API.BaseURL, store, opts...))
	a.log.Debugf("API: %s, хранилище: %s (%s)", cfg.API.BaseURL, cfg.Storage.Driver, cfg.Storage.Path)

	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}

	if err := a.store.Close(); err != nil {
		a.log.Warnf("ошибка закрытия хранилища токена: %v", err)
	}
}

// newLogger пишет в stderr. В режиме TUI без --verbose вывод отключается,
// чтобы не портить экран.
func (a *app) newLogger(cmd *cobra.Command) logger.Logger {
	level := logger.ParseLevel(a.cfg.Log.Level)
	if a.cfg.Log.Verbose {
		level = logger.LevelDebug
	}

	out := a.errOut
	if isTUICommand(cmd) && !a.cfg.Log.Verbose {
		out = io.Discard
	}

	return logger.NewLogger(out, level, "LinkingLink")
}

func isTUICommand(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if os.Getenv("TERM") == "" {
		if err := os.Setenv("TERM", "xterm-256color"); err != nil {
			return fmt.Errorf("ошибка установки переменной окружения TERM: %w", err)
		}
	}

	if err := client.NewTUI(a.session, a.log).Run(cmd.Context()); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}

	return nil
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Запустить терминальный интерфейс (по умолчанию)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

// report выводит ошибку API в виде, понятном пользователю
func (a *app) report(op string, err *client.APIError) error {
	fmt.Fprintln(a.errOut, client.DescribeError(op, err))
	a.log.Debugf("%s: %v", op, err)

	return errReported
}
