// internal/app/notes/export/export.go
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"notekeeper/internal/model"
)

const (
	// FormatMarkdown экспорт в плоский markdown документ
	FormatMarkdown = "md"
	// FormatHTML экспорт в HTML документ с рендерингом markdown содержимого
	FormatHTML = "html"

	exportPermissions = 0644
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<title>%s</title>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; }
h1 { color: #333; }
.meta { color: #666; font-size: 0.9em; }
.content { margin-top: 20px; }
.tags { margin-top: 20px; color: #0066cc; }
</style>
</head>
<body>
<h1>%s</h1>
<div class="meta">
Created: %s<br>
Modified: %s
</div>
<div class="content">
%s</div>
<div class="tags">
Tags: %s
</div>
</body>
</html>
`

// Export сохраняет заметку в файл указанного формата и возвращает путь к нему.
// Имя файла детерминировано: note_<id>_<заголовок с подчеркиваниями>.<формат>
func Export(note *model.Note, format, dir string) (string, error) {
	format = strings.ToLower(format)

	var content string
	switch format {
	case FormatMarkdown:
		content = renderMarkdown(note)
	case FormatHTML:
		rendered, err := renderHTML(note)
		if err != nil {
			return "", err
		}
		content = rendered
	default:
		return "", fmt.Errorf("неподдерживаемый формат: %s", format)
	}

	filename := Filename(note, format)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(content), exportPermissions); err != nil {
		return "", fmt.Errorf("ошибка записи файла экспорта: %w", err)
	}

	return path, nil
}

// filenameSanitizer заменяет пробелы и разделители путей, чтобы заголовок
// не мог вывести файл за пределы директории экспорта
var filenameSanitizer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// Filename возвращает детерминированное имя файла экспорта
func Filename(note *model.Note, format string) string {
	title := filenameSanitizer.Replace(note.Title)
	return fmt.Sprintf("note_%d_%s.%s", note.ID, title, strings.ToLower(format))
}

func renderMarkdown(note *model.Note) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", note.Title))
	b.WriteString(fmt.Sprintf("**Created:** %s  \n", formatTime(note.Created)))
	b.WriteString(fmt.Sprintf("**Modified:** %s  \n\n", formatTime(note.Modified)))
	b.WriteString(note.Content)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("**Tags:** %s\n", strings.Join(note.Tags, ", ")))

	return b.String()
}

func renderHTML(note *model.Note) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(note.Content), &body); err != nil {
		return "", fmt.Errorf("ошибка рендеринга markdown: %w", err)
	}

	return fmt.Sprintf(htmlTemplate,
		note.Title,
		note.Title,
		formatTime(note.Created),
		formatTime(note.Modified),
		body.String(),
		strings.Join(note.Tags, ", "),
	), nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
