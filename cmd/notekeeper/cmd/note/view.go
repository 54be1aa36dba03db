// cmd/notekeeper/cmd/note/view.go
package note

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
)

var ViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Просмотреть заметку",
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

		RunView(store, id)
		return nil
	},
}

// RunView выводит заметку по идентификатору
func RunView(store *notes.Store, id int) {
	note, err := store.Get(id)
	if err != nil {
		color.Red("Заметка не найдена!")
		return
	}

	PrintNote(note)
}
