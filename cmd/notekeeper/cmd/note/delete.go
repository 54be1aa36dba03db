// cmd/notekeeper/cmd/note/delete.go
package note

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить заметку",
	Long:  `Удаление заметки по идентификатору с подтверждением.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := StoreFrom(cmd)
		if err != nil {
			return err
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			color.Red("Неверный ID заметки!")
			return nil
		}

		return RunDelete(cmd.Context(), store, bufio.NewReader(os.Stdin), id, deleteYes)
	},
}

// RunDelete удаляет заметку после подтверждения пользователя
func RunDelete(ctx context.Context, store *notes.Store, reader *bufio.Reader, id int, skipConfirm bool) error {
	note, err := store.Get(id)
	if err != nil {
		color.Red("Заметка не найдена!")
		return nil
	}

	if !skipConfirm {
		question := fmt.Sprintf("Удалить заметку %q? (y/n): ", note.Title)
		if !Confirm(reader, question) {
			color.Yellow("Удаление отменено.")
			return nil
		}
	}

	if err := store.Delete(ctx, id); err != nil {
		color.Red("Ошибка удаления заметки: %v", err)
		return nil
	}

	color.Green("Заметка удалена!")
	return nil
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "удалить без подтверждения")
}
