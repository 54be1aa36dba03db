// cmd/notekeeper/cmd/settings.go
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"notekeeper/cmd/notekeeper/cmd/note"
	"notekeeper/internal/app/notes"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Настройки приложения",
	Long: `Интерактивное меню настроек: шифрование, облачная синхронизация,
таймзона и токен Dropbox. Каждое изменение сохраняется сразу.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := note.StoreFrom(cmd)
		if err != nil {
			return err
		}
		return runSettings(cmd.Context(), store, bufio.NewReader(os.Stdin))
	},
}

func onOff(enabled bool) string {
	if enabled {
		return "ВКЛ"
	}
	return "ВЫКЛ"
}

// runSettings крутит меню настроек до выбора выхода
func runSettings(ctx context.Context, store *notes.Store, reader *bufio.Reader) error {
	for {
		settings := store.Settings()

		color.Yellow("\nНАСТРОЙКИ")
		color.Cyan("1. Переключить шифрование (сейчас: %s)", onOff(settings.Encrypted))
		fmt.Printf("2. Переключить облачную синхронизацию (сейчас: %s)\n", onOff(settings.CloudSync))
		fmt.Printf("3. Задать таймзону (сейчас: %s)\n", settings.Timezone)
		fmt.Println("4. Задать токен Dropbox")
		fmt.Println("5. Назад")

		switch note.Prompt(reader, "Ваш выбор (1-5): ") {
		case "1":
			if err := store.SetEncrypted(ctx, !settings.Encrypted); err != nil {
				color.Red("Ошибка переключения шифрования: %v", err)
				continue
			}
			color.Green("Шифрование переключено, данные пересохранены в новом режиме.")

		case "2":
			if err := store.SetCloudSync(!settings.CloudSync); err != nil {
				color.Red("Ошибка сохранения настроек: %v", err)
				continue
			}
			color.Green("Облачная синхронизация переключена.")

		case "3":
			tz := note.Prompt(reader, "Таймзона (например UTC, Europe/Moscow): ")
			if err := store.SetTimezone(tz); err != nil {
				color.Red("Неверная таймзона!")
				continue
			}
			color.Green("Таймзона %s сохранена.", tz)

		case "4":
			color.New(color.FgCyan).Print("Токен Dropbox: ")
			token, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				color.Red("Ошибка чтения токена: %v", err)
				continue
			}
			if err := store.SetDropboxToken(string(token)); err != nil {
				color.Red("Ошибка сохранения настроек: %v", err)
				continue
			}
			color.Green("Токен Dropbox обновлен.")

		case "5":
			return nil

		default:
			color.Red("Неверный выбор. Введите число от 1 до 5.")
		}
	}
}
