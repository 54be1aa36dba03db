// cmd/notekeeper/cmd/remind.go
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/cmd/notekeeper/cmd/note"
	"notekeeper/internal/app/notes"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Проверить напоминания",
	Long: `Проверка наступивших напоминаний.

Для каждой заметки с наступившим напоминанием предлагается отметить его
как выполненное, что снимает напоминание и сохраняет заметки.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := note.StoreFrom(cmd)
		if err != nil {
			return err
		}
		return runReminderCheck(cmd.Context(), store, bufio.NewReader(os.Stdin))
	},
}

// runReminderCheck выводит наступившие напоминания и предлагает снять их
func runReminderCheck(ctx context.Context, store *notes.Store, reader *bufio.Reader) error {
	due := store.DueReminders(store.Now())
	if len(due) == 0 {
		return nil
	}

	for _, n := range due {
		color.Red("\nНАПОМИНАНИЕ: %s (срок: %s)", n.Title, n.Reminder.Format(notes.ReminderLayout))
		fmt.Println(n.Content)

		if note.Confirm(reader, "Отметить как выполненное? (y/n): ") {
			if err := store.ClearReminder(ctx, n.ID); err != nil {
				color.Red("Ошибка снятия напоминания: %v", err)
			}
		}
	}

	return nil
}
