package notes

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/notes/export"
	"notekeeper/internal/config"
	"notekeeper/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:          config.EnvLocal,
		DataDir:      dir,
		NotesPath:    filepath.Join(dir, "notes.json"),
		SettingsPath: filepath.Join(dir, "config.json"),
		KeyPath:      filepath.Join(dir, ".key"),
		RemotePath:   "/notes.json",
		ExportDir:    dir,
	}
}

func newTestStore(t *testing.T, cfg *config.Config) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(cfg, log)
	require.NoError(t, err)
	require.NoError(t, s.LoadNotes())
	return s
}

func requireSameNotes(t *testing.T, want, got []model.Note) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.Equal(t, want[i].Tags, got[i].Tags)
		assert.True(t, want[i].Created.Equal(got[i].Created), "created не совпадает")
		assert.True(t, want[i].Modified.Equal(got[i].Modified), "modified не совпадает")
		if want[i].HasReminder() {
			require.True(t, got[i].HasReminder())
			assert.True(t, want[i].Reminder.Equal(*got[i].Reminder))
		} else {
			assert.False(t, got[i].HasReminder())
		}
	}
}

func TestRoundTripPlain(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	_, err := s.Create(ctx, "Первая", "содержимое", []string{"работа"}, nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, "Вторая", "еще текст", nil, nil)
	require.NoError(t, err)

	// Перечитываем хранилище с нуля
	reloaded := newTestStore(t, cfg)
	requireSameNotes(t, s.List(), reloaded.List())
}

func TestRoundTripEncrypted(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	require.NoError(t, s.SetEncrypted(ctx, true))

	reminder := time.Date(2030, 1, 2, 9, 30, 0, 0, time.UTC)
	_, err := s.Create(ctx, "Секрет", "шифрованное содержимое", []string{"личное"}, &reminder)
	require.NoError(t, err)

	// Файл на диске содержит JSON-строку с токеном, а не массив
	data, err := os.ReadFile(cfg.NotesPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `"`), "файл должен содержать непрозрачную строку")
	assert.NotContains(t, string(data), "шифрованное содержимое")

	// Новый экземпляр читает настройки и ключ с диска
	reloaded := newTestStore(t, cfg)
	requireSameNotes(t, s.List(), reloaded.List())
}

func TestEncryptionToggleMigratesData(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	_, err := s.Create(ctx, "Заметка", "текст", nil, nil)
	require.NoError(t, err)

	// Включаем шифрование: файл пересохраняется в новом режиме
	require.NoError(t, s.SetEncrypted(ctx, true))
	require.NoError(t, s.LoadNotes())
	assert.Equal(t, 1, s.Count())

	// Выключаем обратно: файл снова читается как массив
	require.NoError(t, s.SetEncrypted(ctx, false))
	data, err := os.ReadFile(cfg.NotesPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "["))

	reloaded := newTestStore(t, cfg)
	assert.Equal(t, 1, reloaded.Count())
}

func TestLoadNotesCorruptedResetsList(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	_, err := s.Create(ctx, "Заметка", "текст", nil, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.NotesPath, []byte("мусор"), 0600))

	err = s.LoadNotes()
	require.Error(t, err)
	assert.Equal(t, 0, s.Count(), "после ошибки декодирования список должен быть пустым")
}

func TestEditAdvancesModified(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testConfig(t))

	created, err := s.Create(ctx, "Заметка", "текст", nil, nil)
	require.NoError(t, err)
	assert.True(t, created.Created.Equal(created.Modified))

	time.Sleep(10 * time.Millisecond)

	updated, err := s.Update(ctx, created.ID, "Новый заголовок", "", nil)
	require.NoError(t, err)

	assert.True(t, updated.Modified.After(created.Modified), "modified должен строго возрастать")
	assert.True(t, updated.Created.Equal(created.Created), "created не должен меняться")
}

func TestUpdateKeepsEmptyFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testConfig(t))

	note, err := s.Create(ctx, "Заголовок", "содержимое", []string{"тег"}, nil)
	require.NoError(t, err)

	// Пустые значения означают "оставить как есть"
	updated, err := s.Update(ctx, note.ID, "", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Заголовок", updated.Title)
	assert.Equal(t, "содержимое", updated.Content)
	assert.Equal(t, []string{"тег"}, updated.Tags)

	// Непустые заменяют
	updated, err = s.Update(ctx, note.ID, "Другой", "", []string{"новый"})
	require.NoError(t, err)
	assert.Equal(t, "Другой", updated.Title)
	assert.Equal(t, "содержимое", updated.Content)
	assert.Equal(t, []string{"новый"}, updated.Tags)
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t, testConfig(t))

	_, err := s.Update(context.Background(), 42, "x", "", nil)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	for _, title := range []string{"первая", "вторая", "третья"} {
		_, err := s.Create(ctx, title, "", nil, nil)
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(ctx, 2))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, "первая", list[0].Title)
	assert.Equal(t, 3, list[1].ID)
	assert.Equal(t, "третья", list[1].Title)

	// Удаление несуществующей заметки
	err := s.Delete(ctx, 2)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	// Удаление сохранено на диск
	reloaded := newTestStore(t, cfg)
	assert.Equal(t, 2, reloaded.Count())
}

func TestIDsDoNotCollideAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testConfig(t))

	for _, title := range []string{"первая", "вторая", "третья"} {
		_, err := s.Create(ctx, title, "", nil, nil)
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(ctx, 2))

	// count+1 дал бы id 3, который уже занят
	note, err := s.Create(ctx, "четвертая", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, note.ID)

	_, err = s.Get(3)
	assert.NoError(t, err)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testConfig(t))

	_, err := s.Create(ctx, "Покупки", "молоко и хлеб", []string{"food", "urgent"}, nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, "Работа", "созвон в понедельник", []string{"office"}, nil)
	require.NoError(t, err)

	// Подстрока присутствует только в теге
	results := s.Search("urg")
	require.Len(t, results, 1)
	assert.Equal(t, "Покупки", results[0].Title)

	// Без учета регистра, по заголовку
	results = s.Search("РАБОТА")
	require.Len(t, results, 1)
	assert.Equal(t, "Работа", results[0].Title)

	// По содержимому
	results = s.Search("молоко")
	require.Len(t, results, 1)

	// Нет совпадений
	assert.Empty(t, s.Search("отпуск"))
}

func TestReminders(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	now := s.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	pastNote, err := s.Create(ctx, "Просроченная", "", nil, &past)
	require.NoError(t, err)
	_, err = s.Create(ctx, "Будущая", "", nil, &future)
	require.NoError(t, err)
	_, err = s.Create(ctx, "Без напоминания", "", nil, nil)
	require.NoError(t, err)

	due := s.DueReminders(now)
	require.Len(t, due, 1)
	assert.Equal(t, pastNote.ID, due[0].ID)

	// Напоминание, равное текущему моменту, тоже считается наступившим
	due = s.DueReminders(past)
	require.Len(t, due, 1)

	// Снятие напоминания сохраняется на диск
	require.NoError(t, s.ClearReminder(ctx, pastNote.ID))
	assert.Empty(t, s.DueReminders(now))

	reloaded := newTestStore(t, cfg)
	assert.Empty(t, reloaded.DueReminders(now))
}

func TestParseReminder(t *testing.T) {
	s := newTestStore(t, testConfig(t))

	parsed, err := s.ParseReminder("2030-01-02 09:30")
	require.NoError(t, err)
	assert.Equal(t, 2030, parsed.Year())
	assert.Equal(t, 9, parsed.Hour())

	_, err = s.ParseReminder("02.01.2030 9:30")
	assert.Error(t, err)
}

func TestSetTimezone(t *testing.T) {
	s := newTestStore(t, testConfig(t))

	require.NoError(t, s.SetTimezone("Europe/Moscow"))
	assert.Equal(t, "Europe/Moscow", s.Settings().Timezone)
	assert.Equal(t, "Europe/Moscow", s.Location().String())

	err := s.SetTimezone("Mars/Olympus")
	require.Error(t, err)
	assert.Equal(t, "Europe/Moscow", s.Settings().Timezone)
}

func TestSettingsMergeOverDefaults(t *testing.T) {
	cfg := testConfig(t)

	// Файл настроек задает только часть ключей
	require.NoError(t, os.WriteFile(cfg.SettingsPath, []byte(`{"timezone":"Europe/Moscow"}`), 0600))

	s := newTestStore(t, cfg)
	settings := s.Settings()
	assert.Equal(t, "Europe/Moscow", settings.Timezone)
	assert.False(t, settings.Encrypted)
	assert.False(t, settings.CloudSync)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"food", "urgent"}, SplitTags("food, urgent"))
	assert.Equal(t, []string{"a", "b"}, SplitTags(" a ,, b , "))
	assert.Nil(t, SplitTags(""))
	assert.Nil(t, SplitTags(" , ,"))
}

// fakeCloud записывает вызовы вместо обращения к сети
type fakeCloud struct {
	uploads   []string
	downloads []string
	content   []byte
	err       error
}

func (f *fakeCloud) Upload(_ context.Context, localPath, remotePath string) error {
	if f.err != nil {
		return f.err
	}
	f.uploads = append(f.uploads, remotePath)
	return nil
}

func (f *fakeCloud) Download(_ context.Context, remotePath, localPath string) error {
	if f.err != nil {
		return f.err
	}
	f.downloads = append(f.downloads, remotePath)
	return os.WriteFile(localPath, f.content, 0600)
}

func TestSaveTriggersCloudUpload(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testConfig(t))

	fake := &fakeCloud{}
	require.NoError(t, s.SetCloudSync(true))
	s.SetCloud(fake)

	_, err := s.Create(ctx, "Заметка", "", nil, nil)
	require.NoError(t, err)

	require.Len(t, fake.uploads, 1)
	assert.Equal(t, "/notes.json", fake.uploads[0])
}

func TestSaveCloudErrorKeepsLocalWrite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	require.NoError(t, s.SetCloudSync(true))
	s.SetCloud(&fakeCloud{err: errors.New("сеть недоступна")})

	_, err := s.Create(ctx, "Заметка", "", nil, nil)
	require.Error(t, err)

	// Локальная запись состоялась несмотря на ошибку облака
	reloaded := newTestStore(t, cfg)
	assert.Equal(t, 1, reloaded.Count())
}

func TestSyncDownReloadsNotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testConfig(t))

	fake := &fakeCloud{content: []byte(`[{"id":5,"title":"из облака","tags":null,"created":"2024-01-01T00:00:00Z","modified":"2024-01-01T00:00:00Z"}]`)}
	require.NoError(t, s.SetCloudSync(true))
	s.SetCloud(fake)

	require.NoError(t, s.SyncDown(ctx))

	require.Equal(t, 1, s.Count())
	note, err := s.Get(5)
	require.NoError(t, err)
	assert.Equal(t, "из облака", note.Title)
}

func TestSyncWithoutCloudConfigured(t *testing.T) {
	s := newTestStore(t, testConfig(t))

	assert.Error(t, s.SyncUp(context.Background()))
	assert.Error(t, s.SyncDown(context.Background()))
}

func TestScenarioShoppingNote(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	s := newTestStore(t, cfg)

	note, err := s.Create(ctx, "Shopping", "milk, bread", SplitTags("food, urgent"), nil)
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, []string{"food", "urgent"}, list[0].Tags)
	assert.True(t, list[0].Created.Equal(list[0].Modified))

	path, err := export.Export(&note, "md", cfg.ExportDir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Shopping")
	assert.Contains(t, string(data), "**Tags:** food, urgent")
}
