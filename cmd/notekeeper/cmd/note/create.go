// cmd/notekeeper/cmd/note/create.go
package note

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
)

var (
	createTitle    string
	createContent  string
	createTags     string
	createReminder string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать новую заметку",
	Long: `Создание новой заметки.

Поля, не переданные флагами, запрашиваются интерактивно.
Напоминание задается в формате YYYY-MM-DD HH:MM в настроенной таймзоне.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := StoreFrom(cmd)
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)

		title := createTitle
		content := createContent
		tags := createTags
		reminder := createReminder

		if title == "" {
			title = Prompt(reader, "Заголовок: ")
		}
		if content == "" {
			content = Prompt(reader, "Содержимое: ")
		}
		if !cmd.Flags().Changed("tags") {
			tags = Prompt(reader, "Теги (через запятую): ")
		}
		if !cmd.Flags().Changed("reminder") {
			if Confirm(reader, "Добавить напоминание? (y/n): ") {
				reminder = Prompt(reader, "Время напоминания (YYYY-MM-DD HH:MM): ")
			}
		}

		return RunCreate(cmd.Context(), store, title, content, tags, reminder)
	},
}

// RunCreate создает заметку из сырого пользовательского ввода.
// Неверный формат напоминания не отменяет создание: заметка создается
// без напоминания, о чем пользователю сообщается.
func RunCreate(ctx context.Context, store *notes.Store, title, content, tagsInput, reminderInput string) error {
	var reminder *time.Time
	if reminderInput != "" {
		parsed, err := store.ParseReminder(reminderInput)
		if err != nil {
			color.Red("Неверный формат даты!")
		} else {
			reminder = &parsed
		}
	}

	note, err := store.Create(ctx, title, content, notes.SplitTags(tagsInput), reminder)
	if err != nil {
		color.Red("Ошибка сохранения заметки: %v", err)
		return nil
	}

	color.Green("\nЗаметка %d создана!", note.ID)
	return nil
}

func init() {
	CreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "заголовок заметки")
	CreateCmd.Flags().StringVarP(&createContent, "content", "c", "", "содержимое заметки")
	CreateCmd.Flags().StringVar(&createTags, "tags", "", "теги через запятую")
	CreateCmd.Flags().StringVar(&createReminder, "reminder", "", "время напоминания (YYYY-MM-DD HH:MM)")
}
