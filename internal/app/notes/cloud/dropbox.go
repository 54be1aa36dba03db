// internal/app/notes/cloud/dropbox.go
package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"
)

const defaultContentURL = "https://content.dropboxapi.com"

// DropboxClient клиент Dropbox Content API.
// Работает только с целыми файлами: /2/files/upload и /2/files/download.
type DropboxClient struct {
	client *resty.Client
	log    *slog.Logger
}

// uploadArg аргументы запроса /2/files/upload
type uploadArg struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Mute bool   `json:"mute"`
}

// downloadArg аргументы запроса /2/files/download
type downloadArg struct {
	Path string `json:"path"`
}

// NewDropboxClient создает клиент с токеном доступа
func NewDropboxClient(token string, log *slog.Logger) *DropboxClient {
	client := resty.New().
		SetBaseURL(defaultContentURL).
		SetAuthToken(token).
		SetTimeout(30 * time.Second)

	return &DropboxClient{
		client: client,
		log:    log,
	}
}

// SetBaseURL переопределяет адрес API (используется в тестах)
func (d *DropboxClient) SetBaseURL(url string) {
	d.client.SetBaseURL(url)
}

// Upload загружает локальный файл в Dropbox с перезаписью
func (d *DropboxClient) Upload(ctx context.Context, localPath, remotePath string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения локального файла: %w", err)
	}

	arg, err := json.Marshal(uploadArg{Path: remotePath, Mode: "overwrite", Mute: true})
	if err != nil {
		return fmt.Errorf("ошибка сериализации аргументов: %w", err)
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Dropbox-API-Arg", string(arg)).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Post("/2/files/upload")
	if err != nil {
		return fmt.Errorf("ошибка загрузки в облако: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("облако вернуло статус %d: %s", resp.StatusCode(), resp.String())
	}

	d.log.Debug("Файл загружен в облако", "remote", remotePath, "bytes", len(data))
	return nil
}

// Download скачивает файл из Dropbox, полностью заменяя локальный
func (d *DropboxClient) Download(ctx context.Context, remotePath, localPath string) error {
	arg, err := json.Marshal(downloadArg{Path: remotePath})
	if err != nil {
		return fmt.Errorf("ошибка сериализации аргументов: %w", err)
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Dropbox-API-Arg", string(arg)).
		Post("/2/files/download")
	if err != nil {
		return fmt.Errorf("ошибка скачивания из облака: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("облако вернуло статус %d: %s", resp.StatusCode(), resp.String())
	}

	if err := os.WriteFile(localPath, resp.Body(), 0600); err != nil {
		return fmt.Errorf("ошибка записи локального файла: %w", err)
	}

	d.log.Debug("Файл скачан из облака", "remote", remotePath, "bytes", len(resp.Body()))
	return nil
}
