package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultEnv         = EnvLocal
	defaultLogLevel    = "info"
	defaultDataDir     = ".notekeeper"
	defaultNotesFile   = "notes.json"
	defaultConfigFile  = "config.json"
	defaultKeyFile     = ".key"
	defaultRemotePath  = "/notes.json"
	defaultExportDir   = "."
	dataDirPermissions = 0700
)

// Config конфигурация процесса: окружение и пути к файлам данных.
// Пользовательские настройки (шифрование, синхронизация, таймзона)
// хранятся отдельно, см. model.Settings.
type Config struct {
	Env          string `mapstructure:"app_env"`
	LogLevel     string `mapstructure:"log_level"`
	DataDir      string `mapstructure:"data_dir"`
	NotesPath    string `mapstructure:"notes_path"`
	SettingsPath string `mapstructure:"settings_path"`
	KeyPath      string `mapstructure:"key_path"`
	RemotePath   string `mapstructure:"remote_path"`
	ExportDir    string `mapstructure:"export_dir"`
}

// MustLoad загружает конфигурацию из окружения и .env файла
func MustLoad() *Config {
	// Загружаем .env файл если существует
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("DATA_DIR", defaultDataDir)
	viper.SetDefault("REMOTE_PATH", defaultRemotePath)
	viper.SetDefault("EXPORT_DIR", defaultExportDir)

	// Получаем домашнюю директорию пользователя
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == defaultDataDir {
		dataDir = filepath.Join(homeDir, dataDir)
	}

	// Создаем директорию данных если ее нет
	if err := os.MkdirAll(dataDir, dataDirPermissions); err != nil {
		fmt.Printf("Ошибка создания директории данных: %v\n", err)
	}

	config := &Config{
		Env:          viper.GetString("APP_ENV"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		DataDir:      dataDir,
		NotesPath:    filepath.Join(dataDir, defaultNotesFile),
		SettingsPath: filepath.Join(dataDir, defaultConfigFile),
		KeyPath:      filepath.Join(dataDir, defaultKeyFile),
		RemotePath:   viper.GetString("REMOTE_PATH"),
		ExportDir:    viper.GetString("EXPORT_DIR"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.NotesPath == "" {
		return fmt.Errorf("notes_path не может быть пустым")
	}
	if c.SettingsPath == "" {
		return fmt.Errorf("settings_path не может быть пустым")
	}
	if c.KeyPath == "" {
		return fmt.Errorf("key_path не может быть пустым")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
