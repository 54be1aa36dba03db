// cmd/notekeeper/cmd/note/search.go
package note

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notekeeper/internal/app/notes"
)

var SearchCmd = &cobra.Command{
	Use:   "search <запрос>",
	Short: "Поиск заметок",
	Long:  `Поиск подстроки без учета регистра в заголовке, содержимом и тегах.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := StoreFrom(cmd)
		if err != nil {
			return err
		}

		RunSearch(store, args[0])
		return nil
	},
}

// RunSearch выполняет поиск и выводит результаты
func RunSearch(store *notes.Store, query string) {
	results := store.Search(query)
	if len(results) == 0 {
		color.Yellow("Совпадений не найдено.")
		return
	}

	color.Yellow("\nРЕЗУЛЬТАТЫ ПОИСКА (найдено: %d)", len(results))
	PrintList(results)
}
