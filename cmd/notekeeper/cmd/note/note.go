// cmd/notekeeper/cmd/note/note.go
package note

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
	"notekeeper/internal/model"
)

// storeKeyType типизированный ключ контекста для хранилища
type storeKeyType struct{}

// StoreKey ключ, под которым корневая команда кладет хранилище в контекст
var StoreKey storeKeyType

var jsonOutput bool

// SetJSONOutput переключает вывод всех команд в формат JSON
func SetJSONOutput(enabled bool) {
	jsonOutput = enabled
}

// NoteCmd родительская команда для работы с заметками
var NoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Работа с заметками",
	Long:  `Создание, просмотр, редактирование, удаление, поиск и экспорт заметок.`,
}

// StoreFrom извлекает хранилище из контекста команды
func StoreFrom(cmd *cobra.Command) (*notes.Store, error) {
	store, ok := cmd.Context().Value(StoreKey).(*notes.Store)
	if !ok || store == nil {
		return nil, fmt.Errorf("хранилище не инициализировано")
	}
	return store, nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Prompt выводит приглашение и читает одну строку ввода
func Prompt(reader *bufio.Reader, label string) string {
	color.New(color.FgCyan).Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// Confirm задает вопрос да/нет
func Confirm(reader *bufio.Reader, label string) bool {
	answer := strings.ToLower(Prompt(reader, label))
	return answer == "y" || answer == "д"
}

// PrintList выводит заметки одной строкой на каждую
func PrintList(list []model.Note) {
	if jsonOutput {
		_ = printJSON(os.Stdout, list)
		return
	}

	if len(list) == 0 {
		color.Yellow("Заметок нет.")
		return
	}

	for _, n := range list {
		fmt.Printf("ID: %d | Заголовок: %s | Теги: %s | Создана: %s | Изменена: %s\n",
			n.ID,
			n.Title,
			strings.Join(n.Tags, ", "),
			n.Created.Format(time.RFC3339),
			n.Modified.Format(time.RFC3339),
		)
	}
}

// PrintNote выводит заметку целиком
func PrintNote(n model.Note) {
	if jsonOutput {
		_ = printJSON(os.Stdout, n)
		return
	}

	color.Yellow("\nЗАМЕТКА %d", n.ID)
	color.Cyan("Заголовок: %s", n.Title)
	fmt.Printf("Содержимое:\n%s\n", n.Content)
	fmt.Printf("Теги: %s\n", strings.Join(n.Tags, ", "))
	fmt.Printf("Создана: %s\n", n.Created.Format(time.RFC3339))
	fmt.Printf("Изменена: %s\n", n.Modified.Format(time.RFC3339))
	if n.HasReminder() {
		fmt.Printf("Напоминание: %s\n", n.Reminder.Format(notes.ReminderLayout))
	}
}
