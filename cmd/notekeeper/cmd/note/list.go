// cmd/notekeeper/cmd/note/list.go
package note

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"notekeeper/internal/model"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список заметок",
	Long:  `Просмотр всех заметок в порядке их создания, без фильтрации.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := StoreFrom(cmd)
		if err != nil {
			return err
		}

		list := store.List()

		if jsonOutput || listFormat == "json" {
			return printJSON(os.Stdout, list)
		}

		switch listFormat {
		case "table":
			return printListTable(list)
		default:
			PrintList(list)
			return nil
		}
	},
}

func printListTable(list []model.Note) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tЗАГОЛОВОК\tТЕГИ\tИЗМЕНЕНА")
	for _, n := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			n.ID, n.Title, strings.Join(n.Tags, ", "), n.Modified.Format(time.DateTime))
	}
	return w.Flush()
}

func init() {
	ListCmd.Flags().StringVar(&listFormat, "format", "simple", "формат вывода: simple, table, json")
}
