// internal/app/notes/crypto/cipher.go
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	keyLength          = chacha20poly1305.KeySize
	keyFilePermissions = 0600
)

// Cipher шифрует и расшифровывает сериализованные заметки.
// Ключ генерируется один раз, сохраняется в файл и переиспользуется.
// Повторная генерация ключа при существующем файле не выполняется,
// иначе ранее зашифрованные данные станут нечитаемыми.
type Cipher struct {
	key     []byte
	keyPath string
}

// NewCipher загружает ключ из файла или генерирует новый
func NewCipher(keyPath string) (*Cipher, error) {
	absPath, err := filepath.Abs(keyPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка определения пути: %w", err)
	}

	c := &Cipher{keyPath: absPath}

	if _, err := os.Stat(absPath); err == nil {
		if err := c.loadKey(); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := c.generateKey(); err != nil {
		return nil, err
	}

	return c, nil
}

// generateKey генерирует новый ключ и сохраняет его в файл
func (c *Cipher) generateKey() error {
	key := make([]byte, keyLength)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return fmt.Errorf("ошибка генерации ключа: %w", err)
	}

	if err := os.WriteFile(c.keyPath, key, keyFilePermissions); err != nil {
		return fmt.Errorf("ошибка записи файла ключа: %w", err)
	}

	c.key = key
	return nil
}

// loadKey загружает ключ из файла
func (c *Cipher) loadKey() error {
	key, err := os.ReadFile(c.keyPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла ключа: %w", err)
	}

	if len(key) != keyLength {
		return fmt.Errorf("неверная длина ключа: %d байт вместо %d", len(key), keyLength)
	}

	c.key = key
	return nil
}

// Encrypt шифрует данные и возвращает непрозрачный токен в base64
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("ошибка создания cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	ciphertext := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt расшифровывает токен, полученный из Encrypt
func (c *Cipher) Decrypt(token string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания cipher: %w", err)
	}

	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("шифротекст слишком короткий")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки: %w", err)
	}

	return plaintext, nil
}

// Clear затирает ключ в памяти
func (c *Cipher) Clear() {
	for i := range c.key {
		c.key[i] = 0
	}
	c.key = nil
}
