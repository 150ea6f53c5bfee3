package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	Storage   StorageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port     int
	APIToken string // optional; empty leaves the HTTP API open
}

// GeneratorConfig points at an OpenAI-compatible image generation provider.
type GeneratorConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
	FrameDelayMS   int
	MaxConcurrent  int
}

type StorageConfig struct {
	Driver  string // "memory" or "sqlite"
	DataDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4000,
		},
		Generator: GeneratorConfig{
			BaseURL:        "https://api.aimlapi.com/v1",
			Model:          "minimax/image-01",
			TimeoutSeconds: 30,
			FrameDelayMS:   1000,
			MaxConcurrent:  4,
		},
		Storage: StorageConfig{
			Driver:  "memory",
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.lessonforge.app) and
// secrets fall back to macOS Keychain.
// On Linux the backend is a JSON file at
// $XDG_CONFIG_HOME/lessonforge/config.json and secrets must be provided via
// environment variables.
//
// Environment variables (LESSONFORGE_*) override backend values on all
// platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), keychainReader{})
}

// keychain abstracts Keychain access for testing.
type keychain interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, kc keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	// Try platform keychain for API key if still empty.
	if cfg.Generator.APIKey == "" {
		if key, err := kc.Get("lessonforge", "image_api_key"); err == nil && key != "" {
			cfg.Generator.APIKey = key
		}
	}

	if cfg.Generator.APIKey == "" {
		msg := "missing required config: image API key. " +
			"Set it via environment variable LESSONFORGE_IMAGE_API_KEY" +
			apiKeyHint()
		return Config{}, fmt.Errorf("%s", msg)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Storage.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid storage.driver %q: must be \"memory\" or \"sqlite\"", cfg.Storage.Driver)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", cfg.Server.Port)
	}
	return nil
}

// keychainReader reads from macOS Keychain via the security CLI.
type keychainReader struct{}

func (keychainReader) Get(service, account string) (string, error) {
	out, err := keychainExec(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
