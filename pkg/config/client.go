package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultAPIBaseURL адрес API, если он не переопределен
	DefaultAPIBaseURL = "http://localhost:5000/api"

	ClientDirName = ".linkinglink"

	KeyAPIBaseURL     = "api.base_url"
	KeyAPITimeout     = "api.timeout"
	KeyAPIInsecure    = "api.insecure_skip_verify"
	KeyStorageDriver  = "storage.driver"
	KeyStoragePath    = "storage.path"
	KeyLogLevel       = "log.level"
	KeyLogVerbose     = "log.verbose"
	defaultAPITimeout = "10s"
)

// ClientConfig представляет конфигурацию клиента
type ClientConfig struct {
	API     APIConfig
	Storage StorageConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

type StorageConfig struct {
	Driver string
	Path   string
}

type LogConfig struct {
	Level   string
	Verbose bool
}

// NewClientViper создает экземпляр viper с переменными окружения клиента.
// Адрес API берется из LL_API_BASE_URL, затем из API_URL.
func NewClientViper() *viper.Viper {
	v := newViper()

	v.SetDefault(KeyAPIBaseURL, DefaultAPIBaseURL)
	v.SetDefault(KeyAPITimeout, defaultAPITimeout)
	v.SetDefault(KeyAPIInsecure, false)
	v.SetDefault(KeyStorageDriver, "file")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogVerbose, false)

	_ = v.BindEnv(KeyAPIBaseURL, "LL_API_BASE_URL", "API_URL")

	return v
}

// LoadClientConfig читает .env, файл конфигурации (если задан или найден в
// ~/.linkinglink/config.yaml) и собирает ClientConfig. Приоритет значений:
// флаги, окружение, файл, значения по умолчанию.
func LoadClientConfig(v *viper.Viper, configFile string) (*ClientConfig, error) {
	_ = godotenv.Load()

	dir, err := ClientDir()
	if err != nil {
		return nil, err
	}

	if errRead := readConfigFile(v, configFile, dir); errRead != nil {
		return nil, errRead
	}

	timeout, err := durationValue(v, KeyAPITimeout)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(v.GetString(KeyAPIBaseURL))
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	cfg := &ClientConfig{
		API: APIConfig{
			BaseURL:            baseURL,
			Timeout:            timeout,
			InsecureSkipVerify: v.GetBool(KeyAPIInsecure),
		},
		Storage: StorageConfig{
			Driver: v.GetString(KeyStorageDriver),
			Path:   v.GetString(KeyStoragePath),
		},
		Log: LogConfig{
			Level:   v.GetString(KeyLogLevel),
			Verbose: v.GetBool(KeyLogVerbose),
		},
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath(dir, cfg.Storage.Driver)
	}

	return cfg, nil
}

// ClientDir возвращает каталог клиента в домашней директории
func ClientDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("ошибка определения домашней директории: %w", err)
	}

	return filepath.Join(homeDir, ClientDirName), nil
}

func defaultStoragePath(dir, driver string) string {
	if driver == "sqlite" {
		return filepath.Join(dir, "storage.db")
	}

	return filepath.Join(dir, "storage.json")
}
