// cmd/notekeeper/cmd/note/export.go
package note

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
	"notekeeper/internal/app/notes/export"
)

var (
	exportFormat string
	exportDir    string
)

var ExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Экспортировать заметку",
	Long: `Экспорт заметки в файл.

Поддерживаемые форматы:
- md   - плоский markdown документ
- html - HTML документ с рендерингом markdown содержимого

Имя файла формируется из ID и заголовка заметки.`,
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

		RunExport(store, id, exportFormat, exportDir)
		return nil
	},
}

// RunExport экспортирует заметку в указанный формат.
// Неподдерживаемый формат сообщается пользователю, ошибка наверх не
// поднимается.
func RunExport(store *notes.Store, id int, format, dir string) {
	note, err := store.Get(id)
	if err != nil {
		color.Red("Заметка не найдена!")
		return
	}

	path, err := export.Export(&note, format, dir)
	if err != nil {
		color.Red("Ошибка экспорта: %v", err)
		return
	}

	color.Green("Заметка экспортирована в %s", path)
}

func init() {
	ExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "формат экспорта: md или html")
	ExportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "директория для файла экспорта")
}
