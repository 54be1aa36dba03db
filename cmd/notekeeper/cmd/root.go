// cmd/notekeeper/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"notekeeper/cmd/notekeeper/cmd/note"
	"notekeeper/internal/app/notes"
	"notekeeper/internal/config"
	"notekeeper/internal/utils/logger"
)

var (
	cfg        *config.Config
	log        *slog.Logger
	dataDir    string
	debug      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "NoteKeeper - менеджер личных заметок",
	Long: `NoteKeeper — консольное приложение для ведения личных заметок.

Заметки хранятся в локальном JSON файле, опционально шифруются на диске
и зеркалируются в Dropbox. Поддерживаются теги, напоминания и экспорт
в markdown и HTML.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	// Переопределяем директорию данных из флага командной строки
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.NotesPath = filepath.Join(dataDir, "notes.json")
		cfg.SettingsPath = filepath.Join(dataDir, "config.json")
		cfg.KeyPath = filepath.Join(dataDir, ".key")
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return fmt.Errorf("ошибка создания директории данных: %w", err)
		}
	}

	if debug {
		cfg.Env = config.EnvLocal
	}

	log = logger.New(cfg.Env)

	store, err := notes.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	// Ошибка чтения заметок не фатальна: сообщаем и продолжаем с пустым списком
	if err := store.LoadNotes(); err != nil {
		color.Red("Ошибка загрузки заметок: %v", err)
	}

	note.SetJSONOutput(jsonOutput)
	cmd.SetContext(context.WithValue(cmd.Context(), note.StoreKey, store))

	return nil
}

func init() {
	cobra.OnInitialize()

	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "директория с файлами заметок")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")

	// Команды добавляются в init() соответствующих файлов
}
