package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "LL"
	configName     = "config"
	configType     = "yaml"
	systemDir      = "/etc/linkinglink"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	KeyServerHost     = "server.host"
	KeyServerPort     = "server.port"
	KeyReadTimeout    = "server.read_timeout"
	KeyWriteTimeout   = "server.write_timeout"
	KeyTLSCertFile    = "server.tls_cert_file"
	KeyTLSKeyFile     = "server.tls_key_file"
	KeyDatabaseDriver = "database.driver"
	KeyDatabaseURL    = "database.url"
	KeyDatabaseHost   = "database.host"
	KeyDatabasePort   = "database.port"
	KeyDatabaseUser   = "database.username"
	KeyDatabasePass   = "database.password"
	KeyDatabaseName   = "database.dbname"
	KeyDatabaseSSL    = "database.sslmode"
	KeyJWTSecret      = "auth.jwt_secret"
	KeyJWTExpiration  = "auth.jwt_expiration_hrs"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

var (
	ErrMissingJWTSecret = errors.New("не задан auth.jwt_secret")
	ErrUnknownDriver    = errors.New("неизвестный драйвер базы данных")
)

// Config представляет конфигурацию сервера
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

// DatabaseConfig описывает хранилище сервера. URL, если задан,
// используется вместо отдельных параметров подключения.
type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret        string
	JWTExpirationHrs int
}

// newViper создает экземпляр viper, читающий переменные окружения LL_*
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	return v
}

// readConfigFile читает явно заданный файл или ищет config.yaml в dirs.
// Отсутствие файла при поиске ошибкой не считается.
func readConfigFile(v *viper.Viper, configFile string, dirs ...string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if configFile == "" && errors.As(err, &configFileNotFoundError) {
		return nil
	}

	return fmt.Errorf("ошибка чтения конфигурационного файла: %w", err)
}

func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("неверный формат %s: %w", key, err)
	}

	return d, nil
}

// NewServerViper создает экземпляр viper со значениями сервера по умолчанию.
// Секрет, строка подключения и порт читаются также из JWT_SECRET,
// DATABASE_URL и PORT.
func NewServerViper() *viper.Viper {
	v := newViper()

	v.SetDefault(KeyServerHost, "0.0.0.0")
	v.SetDefault(KeyServerPort, "5000")
	v.SetDefault(KeyReadTimeout, "10s")
	v.SetDefault(KeyWriteTimeout, "10s")
	v.SetDefault(KeyDatabaseDriver, DriverPostgres)
	v.SetDefault(KeyDatabaseHost, "localhost")
	v.SetDefault(KeyDatabasePort, "5432")
	v.SetDefault(KeyDatabaseName, "linkinglink")
	v.SetDefault(KeyDatabaseSSL, "disable")
	v.SetDefault(KeyJWTExpiration, 24)

	_ = v.BindEnv(KeyJWTSecret, "LL_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv(KeyDatabaseURL, "LL_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv(KeyServerPort, "LL_SERVER_PORT", "PORT")

	return v
}

// LoadConfig ищет config.yaml в path и в /etc/linkinglink
func LoadConfig(path string) (*Config, error) {
	return LoadServerConfig(NewServerViper(), "", path, systemDir)
}

func LoadServerConfig(v *viper.Viper, configFile string, dirs ...string) (*Config, error) {
	_ = godotenv.Load()

	if err := readConfigFile(v, configFile, dirs...); err != nil {
		return nil, err
	}

	readTimeout, err := durationValue(v, KeyReadTimeout)
	if err != nil {
		return nil, err
	}

	writeTimeout, err := durationValue(v, KeyWriteTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString(KeyServerHost),
			Port:         v.GetString(KeyServerPort),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			TLSCertFile:  v.GetString(KeyTLSCertFile),
			TLSKeyFile:   v.GetString(KeyTLSKeyFile),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString(KeyDatabaseDriver)),
			URL:      v.GetString(KeyDatabaseURL),
			Host:     v.GetString(KeyDatabaseHost),
			Port:     v.GetString(KeyDatabasePort),
			Username: v.GetString(KeyDatabaseUser),
			Password: v.GetString(KeyDatabasePass),
			DBName:   v.GetString(KeyDatabaseName),
			SSLMode:  v.GetString(KeyDatabaseSSL),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString(KeyJWTSecret),
			JWTExpirationHrs: v.GetInt(KeyJWTExpiration),
		},
	}

	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverMemory {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Database.Driver)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// GetDSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// TokenTTL возвращает время жизни токена
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationHrs) * time.Hour
}
