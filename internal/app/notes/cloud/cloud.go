package cloud

import "context"

// Storage облачное хранилище файлов. Поддерживается только полная
// замена файла: без инкрементальной синхронизации и разрешения конфликтов.
type Storage interface {
	// Upload загружает локальный файл целиком в облако
	Upload(ctx context.Context, localPath, remotePath string) error
	// Download скачивает файл из облака, полностью заменяя локальный
	Download(ctx context.Context, remotePath, localPath string) error
}
