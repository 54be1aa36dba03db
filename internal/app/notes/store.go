// internal/app/notes/store.go
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/notes/cloud"
	"notekeeper/internal/app/notes/crypto"
	"notekeeper/internal/config"
	"notekeeper/internal/model"
)

const filePermissions = 0600

// ErrNoteNotFound заметка с указанным ID не найдена
var ErrNoteNotFound = errors.New("заметка не найдена")

// Store хранилище заметок: настройки, опциональный шифр, опциональное
// облако и упорядоченный список заметок. Весь список сохраняется на диск
// целиком после каждой мутации. Доступ к файлам предполагается
// эксклюзивным для одного процесса, блокировки не реализованы.
type Store struct {
	cfg      *config.Config
	log      *slog.Logger
	settings model.Settings
	cipher   *crypto.Cipher
	cloud    cloud.Storage
	notes    []model.Note
	loc      *time.Location
}

// New создает хранилище: загружает настройки, инициализирует шифр и
// облачный клиент согласно им. Заметки загружаются отдельным вызовом
// LoadNotes, чтобы ошибка чтения не блокировала запуск.
func New(cfg *config.Config, log *slog.Logger) (*Store, error) {
	s := &Store{
		cfg: cfg,
		log: log,
		loc: time.UTC,
	}

	if err := s.LoadSettings(); err != nil {
		return nil, fmt.Errorf("ошибка загрузки настроек: %w", err)
	}

	loc, err := time.LoadLocation(s.settings.Timezone)
	if err != nil {
		log.Warn("Неизвестная таймзона, используется UTC", "timezone", s.settings.Timezone)
		loc = time.UTC
	}
	s.loc = loc

	if s.settings.Encrypted {
		cipher, err := crypto.NewCipher(cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации шифрования: %w", err)
		}
		s.cipher = cipher
	}

	if s.settings.CloudSync {
		if s.settings.DropboxToken == "" {
			log.Warn("Облачная синхронизация включена, но токен Dropbox не задан")
		} else {
			s.cloud = cloud.NewDropboxClient(s.settings.DropboxToken, log)
		}
	}

	return s, nil
}

// SetCloud подменяет облачное хранилище (используется в тестах)
func (s *Store) SetCloud(c cloud.Storage) {
	s.cloud = c
}

// Settings возвращает копию текущих настроек
func (s *Store) Settings() model.Settings {
	return s.settings
}

// Location возвращает настроенную таймзону
func (s *Store) Location() *time.Location {
	return s.loc
}

// LoadSettings загружает настройки из файла, накладывая их на значения
// по умолчанию. Отсутствие файла не является ошибкой.
func (s *Store) LoadSettings() error {
	s.settings = model.DefaultSettings()

	data, err := os.ReadFile(s.cfg.SettingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("ошибка чтения файла настроек: %w", err)
	}

	if err := json.Unmarshal(data, &s.settings); err != nil {
		return fmt.Errorf("ошибка декодирования настроек: %w", err)
	}

	return nil
}

// SaveSettings сохраняет настройки в файл. Настройки никогда не шифруются.
func (s *Store) SaveSettings() error {
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации настроек: %w", err)
	}

	if err := os.WriteFile(s.cfg.SettingsPath, data, filePermissions); err != nil {
		return fmt.Errorf("ошибка записи файла настроек: %w", err)
	}

	return nil
}

// LoadNotes загружает заметки из файла. Если включено шифрование, файл
// содержит JSON-строку с непрозрачным токеном, которую нужно расшифровать
// перед разбором. Любая ошибка декодирования сбрасывает список в пустой
// и возвращается наверх, частичное восстановление не выполняется.
func (s *Store) LoadNotes() error {
	s.notes = nil

	data, err := os.ReadFile(s.cfg.NotesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("ошибка чтения файла заметок: %w", err)
	}

	if s.settings.Encrypted {
		if s.cipher == nil {
			return fmt.Errorf("шифрование включено, но ключ не инициализирован")
		}

		var token string
		if err := json.Unmarshal(data, &token); err != nil {
			return fmt.Errorf("ошибка декодирования зашифрованного файла: %w", err)
		}

		data, err = s.cipher.Decrypt(token)
		if err != nil {
			return fmt.Errorf("ошибка расшифровки заметок: %w", err)
		}
	}

	var loaded []model.Note
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("ошибка декодирования заметок: %w", err)
	}

	s.notes = loaded
	s.log.Debug("Заметки загружены", "count", len(s.notes))
	return nil
}

// SaveNotes сохраняет весь список заметок на диск. При включенном
// шифровании сериализованный список шифруется и записывается как
// JSON-строка. После успешной записи при включенной синхронизации файл
// загружается в облако; ошибка загрузки возвращается, но локальная
// запись остается в силе.
func (s *Store) SaveNotes(ctx context.Context) error {
	data, err := json.MarshalIndent(s.notes, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации заметок: %w", err)
	}

	if s.settings.Encrypted {
		if s.cipher == nil {
			return fmt.Errorf("шифрование включено, но ключ не инициализирован")
		}

		token, err := s.cipher.Encrypt(data)
		if err != nil {
			return fmt.Errorf("ошибка шифрования заметок: %w", err)
		}

		data, err = json.Marshal(token)
		if err != nil {
			return fmt.Errorf("ошибка сериализации токена: %w", err)
		}
	}

	if err := os.WriteFile(s.cfg.NotesPath, data, filePermissions); err != nil {
		return fmt.Errorf("ошибка записи файла заметок: %w", err)
	}

	if s.settings.CloudSync && s.cloud != nil {
		if err := s.cloud.Upload(ctx, s.cfg.NotesPath, s.cfg.RemotePath); err != nil {
			return fmt.Errorf("ошибка синхронизации с облаком: %w", err)
		}
	}

	return nil
}

// SetEncrypted переключает шифрование и сразу пересохраняет заметки в
// новом режиме, чтобы файл на диске не остался в несовместимом формате.
func (s *Store) SetEncrypted(ctx context.Context, enabled bool) error {
	if s.settings.Encrypted == enabled {
		return nil
	}

	if enabled && s.cipher == nil {
		cipher, err := crypto.NewCipher(s.cfg.KeyPath)
		if err != nil {
			return fmt.Errorf("ошибка инициализации шифрования: %w", err)
		}
		s.cipher = cipher
	}

	s.settings.Encrypted = enabled

	// Миграция: пересохраняем данные в новом режиме
	if err := s.SaveNotes(ctx); err != nil {
		s.settings.Encrypted = !enabled
		return fmt.Errorf("ошибка миграции заметок: %w", err)
	}

	if err := s.SaveSettings(); err != nil {
		return err
	}

	s.log.Info("Шифрование переключено", "encrypted", enabled)
	return nil
}

// SetCloudSync переключает облачную синхронизацию
func (s *Store) SetCloudSync(enabled bool) error {
	s.settings.CloudSync = enabled

	if enabled {
		if s.settings.DropboxToken == "" {
			s.log.Warn("Токен Dropbox не задан, синхронизация не будет работать")
		} else if s.cloud == nil {
			s.cloud = cloud.NewDropboxClient(s.settings.DropboxToken, s.log)
		}
	} else {
		s.cloud = nil
	}

	return s.SaveSettings()
}

// SetDropboxToken сохраняет токен доступа Dropbox
func (s *Store) SetDropboxToken(token string) error {
	s.settings.DropboxToken = token

	if s.settings.CloudSync && token != "" {
		s.cloud = cloud.NewDropboxClient(token, s.log)
	}

	return s.SaveSettings()
}

// SetTimezone валидирует и сохраняет таймзону
func (s *Store) SetTimezone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("неизвестная таймзона %q: %w", name, err)
	}

	s.settings.Timezone = name
	s.loc = loc

	return s.SaveSettings()
}

// SyncUp загружает файл заметок в облако целиком
func (s *Store) SyncUp(ctx context.Context) error {
	if s.cloud == nil {
		return fmt.Errorf("облачная синхронизация не настроена")
	}

	if _, err := os.Stat(s.cfg.NotesPath); err != nil {
		return fmt.Errorf("файл заметок недоступен: %w", err)
	}

	return s.cloud.Upload(ctx, s.cfg.NotesPath, s.cfg.RemotePath)
}

// SyncDown скачивает файл заметок из облака и перечитывает его.
// Локальный файл заменяется целиком, разрешение конфликтов не выполняется.
func (s *Store) SyncDown(ctx context.Context) error {
	if s.cloud == nil {
		return fmt.Errorf("облачная синхронизация не настроена")
	}

	if err := s.cloud.Download(ctx, s.cfg.RemotePath, s.cfg.NotesPath); err != nil {
		return err
	}

	return s.LoadNotes()
}
