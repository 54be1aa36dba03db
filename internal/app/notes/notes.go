// internal/app/notes/notes.go
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notekeeper/internal/model"
)

// ReminderLayout формат ввода времени напоминания
const ReminderLayout = "2006-01-02 15:04"

// Create создает заметку и сохраняет хранилище.
// Идентификатор назначается как максимальный существующий + 1, поэтому
// после удалений идентификаторы не переиспользуются.
func (s *Store) Create(ctx context.Context, title, content string, tags []string, reminder *time.Time) (model.Note, error) {
	now := time.Now().In(s.loc)

	note := model.Note{
		ID:       s.nextID(),
		Title:    title,
		Content:  content,
		Tags:     tags,
		Created:  now,
		Modified: now,
		Reminder: reminder,
	}

	s.notes = append(s.notes, note)

	if err := s.SaveNotes(ctx); err != nil {
		return note, err
	}

	s.log.Debug("Заметка создана", "id", note.ID, "title", note.Title)
	return note, nil
}

// List возвращает все заметки в порядке хранения
func (s *Store) List() []model.Note {
	result := make([]model.Note, len(s.notes))
	copy(result, s.notes)
	return result
}

// Count возвращает количество заметок
func (s *Store) Count() int {
	return len(s.notes)
}

// Get возвращает заметку по точному совпадению идентификатора
func (s *Store) Get(id int) (model.Note, error) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Note{}, fmt.Errorf("%w: id %d", ErrNoteNotFound, id)
}

// Update обновляет заметку: пустое значение поля означает "оставить как
// есть", непустое заменяет. Метка modified обновляется при любом
// успешном поиске заметки.
func (s *Store) Update(ctx context.Context, id int, title, content string, tags []string) (model.Note, error) {
	idx := -1
	for i := range s.notes {
		if s.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Note{}, fmt.Errorf("%w: id %d", ErrNoteNotFound, id)
	}

	if title != "" {
		s.notes[idx].Title = title
	}
	if content != "" {
		s.notes[idx].Content = content
	}
	if tags != nil {
		s.notes[idx].Tags = tags
	}
	s.notes[idx].Modified = time.Now().In(s.loc)

	if err := s.SaveNotes(ctx); err != nil {
		return s.notes[idx], err
	}

	s.log.Debug("Заметка обновлена", "id", id)
	return s.notes[idx], nil
}

// Delete удаляет заметку по идентификатору, сохраняя порядок остальных
func (s *Store) Delete(ctx context.Context, id int) error {
	filtered := s.notes[:0:0]
	found := false
	for _, n := range s.notes {
		if n.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, n)
	}

	if !found {
		return fmt.Errorf("%w: id %d", ErrNoteNotFound, id)
	}

	s.notes = filtered

	if err := s.SaveNotes(ctx); err != nil {
		return err
	}

	s.log.Debug("Заметка удалена", "id", id)
	return nil
}

// Search ищет подстроку без учета регистра в заголовке, содержимом и
// тегах. Результаты возвращаются в порядке хранения.
func (s *Store) Search(query string) []model.Note {
	query = strings.ToLower(query)

	var results []model.Note
	for _, n := range s.notes {
		if matches(&n, query) {
			results = append(results, n)
		}
	}

	return results
}

func matches(n *model.Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// DueReminders возвращает заметки, чье напоминание наступило к моменту now
func (s *Store) DueReminders(now time.Time) []model.Note {
	var due []model.Note
	for _, n := range s.notes {
		if n.HasReminder() && !now.Before(*n.Reminder) {
			due = append(due, n)
		}
	}
	return due
}

// ClearReminder снимает напоминание с заметки и сохраняет хранилище
func (s *Store) ClearReminder(ctx context.Context, id int) error {
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Reminder = nil
			return s.SaveNotes(ctx)
		}
	}
	return fmt.Errorf("%w: id %d", ErrNoteNotFound, id)
}

// Now возвращает текущее время в настроенной таймзоне
func (s *Store) Now() time.Time {
	return time.Now().In(s.loc)
}

// ParseReminder разбирает время напоминания в настроенной таймзоне
func (s *Store) ParseReminder(value string) (time.Time, error) {
	t, err := time.ParseInLocation(ReminderLayout, value, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты, ожидается %s: %w", ReminderLayout, err)
	}
	return t, nil
}

func (s *Store) nextID() int {
	max := 0
	for _, n := range s.notes {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

// SplitTags разбирает строку тегов через запятую: пробелы обрезаются,
// пустые элементы отбрасываются
func SplitTags(input string) []string {
	var tags []string
	for _, tag := range strings.Split(input, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
