package model

import "time"

// Note заметка пользователя
type Note struct {
	ID       int        `json:"id"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Tags     []string   `json:"tags"`
	Created  time.Time  `json:"created"`
	Modified time.Time  `json:"modified"`
	Reminder *time.Time `json:"reminder,omitempty"`
}

// Settings пользовательские настройки, хранятся в config.json
type Settings struct {
	Encrypted    bool   `json:"encrypted"`
	CloudSync    bool   `json:"cloud_sync"`
	DropboxToken string `json:"dropbox_token,omitempty"`
	Timezone     string `json:"timezone"`
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Encrypted:    false,
		CloudSync:    false,
		DropboxToken: "",
		Timezone:     "UTC",
	}
}

// HasReminder проверяет, установлено ли напоминание
func (n *Note) HasReminder() bool {
	return n.Reminder != nil
}
