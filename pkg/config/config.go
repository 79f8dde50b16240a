package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Log     LogConfig
	Mock    MockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig configuración del backend REST contra el que opera la consola.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout de las llamadas HTTP.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig configuración del almacenamiento local de la sesión.
type StorageConfig struct {
	Path string // archivo JSON clave→valor
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// MockConfig configuración del backend fake local (cmd/mockapi).
type MockConfig struct {
	Host          string
	Port          int
	JWTSecret     string
	JWTExpMinutes int
	JWTIssuer     string
}

// Addr devuelve la dirección de escucha del mock (host:port).
func (c MockConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, STORAGE_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "posjarabe-admin"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "http://localhost:3000"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Path: getString(v, "STORAGE_PATH", defaultStoragePath()),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Mock: MockConfig{
			Host:          getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:          getInt(v, "HTTP_PORT", 3000),
			JWTSecret:     getString(v, "JWT_SECRET", "posjarabe-dev-secret"),
			JWTExpMinutes: getInt(v, "JWT_EXPIRATION_MINUTES", 15),
			JWTIssuer:     getString(v, "JWT_ISSUER", "posjarabe-mock"),
		},
	}

	return cfg, nil
}

// defaultStoragePath ubica la sesión bajo el home del usuario.
func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".posjarabe-session.json"
	}
	return filepath.Join(home, ".posjarabe", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
