// cmd/notekeeper/cmd/menu.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/cmd/notekeeper/cmd/note"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Интерактивный режим",
	Long: `Интерактивное меню с выбором действия по номеру.

При входе выполняется проверка напоминаний. Ошибка любой операции
сообщается, после чего цикл продолжается; выход только по пункту 11.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := note.StoreFrom(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		reader := bufio.NewReader(os.Stdin)

		// Проверяем напоминания при запуске
		if err := runReminderCheck(ctx, store, reader); err != nil {
			color.Red("Ошибка проверки напоминаний: %v", err)
		}

		for {
			showMenu()

			input := note.Prompt(reader, "\nВаш выбор (1-11): ")
			choice, err := strconv.Atoi(input)
			if err != nil {
				color.Red("\nНеверный ввод. Введите число.")
				continue
			}

			switch choice {
			case 1:
				title := note.Prompt(reader, "Заголовок: ")
				content := note.Prompt(reader, "Содержимое: ")
				tags := note.Prompt(reader, "Теги (через запятую): ")
				reminder := ""
				if note.Confirm(reader, "Добавить напоминание? (y/n): ") {
					reminder = note.Prompt(reader, "Время напоминания (YYYY-MM-DD HH:MM): ")
				}
				_ = note.RunCreate(ctx, store, title, content, tags, reminder)

			case 2:
				note.PrintList(store.List())

			case 3:
				if id, ok := promptID(reader, "ID заметки для просмотра: "); ok {
					note.RunView(store, id)
				}

			case 4:
				if id, ok := promptID(reader, "ID заметки для редактирования: "); ok {
					_ = note.RunEdit(ctx, store, reader, id)
				}

			case 5:
				if id, ok := promptID(reader, "ID заметки для удаления: "); ok {
					_ = note.RunDelete(ctx, store, reader, id, false)
				}

			case 6:
				query := note.Prompt(reader, "Поисковый запрос: ")
				note.RunSearch(store, query)

			case 7:
				if err := runReminderCheck(ctx, store, reader); err != nil {
					color.Red("Ошибка проверки напоминаний: %v", err)
				}

			case 8:
				if id, ok := promptID(reader, "ID заметки для экспорта: "); ok {
					format := note.Prompt(reader, "Формат (html/md): ")
					note.RunExport(store, id, format, cfg.ExportDir)
				}

			case 9:
				if err := runSettings(ctx, store, reader); err != nil {
					color.Red("Ошибка настроек: %v", err)
				}

			case 10:
				_ = runSyncDown(ctx, store)

			case 11:
				color.Yellow("\nДо свидания!")
				return nil

			default:
				color.Red("\nНеверный выбор. Введите число от 1 до 11.")
			}
		}
	},
}

func showMenu() {
	color.Yellow("\nNOTEKEEPER")
	color.Cyan("1. Создать заметку")
	fmt.Println("2. Список заметок")
	fmt.Println("3. Просмотреть заметку")
	fmt.Println("4. Редактировать заметку")
	fmt.Println("5. Удалить заметку")
	fmt.Println("6. Поиск заметок")
	fmt.Println("7. Проверить напоминания")
	fmt.Println("8. Экспортировать заметку")
	fmt.Println("9. Настройки")
	fmt.Println("10. Синхронизировать")
	fmt.Println("11. Выход")
}

func promptID(reader *bufio.Reader, label string) (int, bool) {
	id, err := strconv.Atoi(note.Prompt(reader, label))
	if err != nil {
		color.Red("Неверный ID заметки!")
		return 0, false
	}
	return id, true
}
