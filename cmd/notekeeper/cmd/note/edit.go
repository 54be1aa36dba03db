// cmd/notekeeper/cmd/note/edit.go
package note

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Редактировать заметку",
	Long: `Редактирование существующей заметки.

Пустой ввод для любого поля означает "оставить текущее значение".
Метка modified обновляется при любом успешном редактировании.`,
	Args: cobra.ExactArgs(1),
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

		return RunEdit(cmd.Context(), store, bufio.NewReader(os.Stdin), id)
	},
}

// RunEdit интерактивно редактирует заметку
func RunEdit(ctx context.Context, store *notes.Store, reader *bufio.Reader, id int) error {
	current, err := store.Get(id)
	if err != nil {
		color.Red("Заметка не найдена!")
		return nil
	}

	color.Yellow("\nРЕДАКТИРОВАНИЕ ЗАМЕТКИ %d", id)
	title := Prompt(reader, fmt.Sprintf("Новый заголовок (пусто — оставить %q): ", current.Title))
	content := Prompt(reader, "Новое содержимое (пусто — оставить текущее): ")
	tagsInput := Prompt(reader, "Новые теги через запятую (пусто — оставить текущие): ")

	var tags []string
	if tagsInput != "" {
		tags = notes.SplitTags(tagsInput)
	}

	if _, err := store.Update(ctx, id, title, content, tags); err != nil {
		if errors.Is(err, notes.ErrNoteNotFound) {
			color.Red("Заметка не найдена!")
			return nil
		}
		color.Red("Ошибка сохранения заметки: %v", err)
		return nil
	}

	color.Green("Заметка обновлена!")
	return nil
}
