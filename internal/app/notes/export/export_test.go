package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/model"
)

func testNote() *model.Note {
	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return &model.Note{
		ID:       1,
		Title:    "Shopping",
		Content:  "Купить **молоко** и хлеб",
		Tags:     []string{"food", "urgent"},
		Created:  created,
		Modified: created,
	}
}

func TestExportMarkdown(t *testing.T) {
	dir := t.TempDir()

	path, err := Export(testNote(), "md", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "note_1_Shopping.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# Shopping")
	assert.Contains(t, content, "**Tags:** food, urgent")
	assert.Contains(t, content, "Купить **молоко** и хлеб")
}

func TestExportHTML(t *testing.T) {
	dir := t.TempDir()

	path, err := Export(testNote(), "html", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "note_1_Shopping.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "<title>Shopping</title>")
	assert.Contains(t, content, "<h1>Shopping</h1>")
	// markdown содержимого отрендерен в HTML
	assert.Contains(t, content, "<strong>молоко</strong>")
	assert.Contains(t, content, "Tags: food, urgent")
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()

	_, err := Export(testNote(), "pdf", dir)
	require.Error(t, err)

	// Файл не должен быть создан
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFilenameReplacesSpaces(t *testing.T) {
	note := testNote()
	note.ID = 7
	note.Title = "Список дел на завтра"

	assert.Equal(t, "note_7_Список_дел_на_завтра.md", Filename(note, "MD"))
}

func TestFilenameSanitizesPathSeparators(t *testing.T) {
	note := testNote()
	note.Title = "../../etc/passwd"

	assert.Equal(t, "note_1_.._.._etc_passwd.md", Filename(note, "md"))

	note.Title = `до\после`
	assert.Equal(t, `note_1_до_после.md`, Filename(note, "md"))
}

func TestExportStaysInsideExportDir(t *testing.T) {
	dir := t.TempDir()
	outer := filepath.Join(dir, "export")
	require.NoError(t, os.Mkdir(outer, 0755))

	note := testNote()
	note.Title = "../escape"

	path, err := Export(note, "md", outer)
	require.NoError(t, err)

	rel, err := filepath.Rel(outer, path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."), "файл экспорта не должен покидать директорию")
}
