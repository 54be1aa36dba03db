// cmd/notekeeper/cmd/sync.go
package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/cmd/notekeeper/cmd/note"
	"notekeeper/internal/app/notes"
)

var syncPush bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с облаком",
	Long: `Синхронизация файла заметок с Dropbox.

По умолчанию файл скачивается из облака и полностью заменяет локальный.
С флагом --push локальный файл загружается в облако. Разрешение
конфликтов не выполняется: последняя запись побеждает.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := note.StoreFrom(cmd)
		if err != nil {
			return err
		}
		if syncPush {
			return runSyncUp(cmd.Context(), store)
		}
		return runSyncDown(cmd.Context(), store)
	},
}

func runSyncDown(ctx context.Context, store *notes.Store) error {
	if err := store.SyncDown(ctx); err != nil {
		color.Red("Ошибка синхронизации: %v", err)
		return nil
	}
	color.Green("Заметки синхронизированы из облака!")
	return nil
}

func runSyncUp(ctx context.Context, store *notes.Store) error {
	if err := store.SyncUp(ctx); err != nil {
		color.Red("Ошибка синхронизации: %v", err)
		return nil
	}
	color.Green("Заметки синхронизированы в облако!")
	return nil
}

func init() {
	syncCmd.Flags().BoolVar(&syncPush, "push", false, "загрузить локальный файл в облако")
}
