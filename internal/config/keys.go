package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "LESSONFORGE_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.api_token", typ: kString, env: "LESSONFORGE_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.APIToken },
	},
	{
		key: "generator.base_url", typ: kString, env: "LESSONFORGE_GENERATOR_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Generator.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Generator.BaseURL },
	},
	{
		key: "generator.model", typ: kString, env: "LESSONFORGE_GENERATOR_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Generator.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Generator.Model },
	},
	{
		key: "generator.api_key", typ: kString, env: "LESSONFORGE_IMAGE_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Generator.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Generator.APIKey },
	},
	{
		key: "generator.timeout_seconds", typ: kInt, env: "LESSONFORGE_GENERATOR_TIMEOUT_SECONDS",
		apply:   func(cfg *Config, v any) { cfg.Generator.TimeoutSeconds = v.(int) },
		extract: func(cfg Config) any { return cfg.Generator.TimeoutSeconds },
	},
	{
		key: "generator.frame_delay_ms", typ: kInt, env: "LESSONFORGE_GENERATOR_FRAME_DELAY_MS",
		apply:   func(cfg *Config, v any) { cfg.Generator.FrameDelayMS = v.(int) },
		extract: func(cfg Config) any { return cfg.Generator.FrameDelayMS },
	},
	{
		key: "generator.max_concurrent", typ: kInt, env: "LESSONFORGE_GENERATOR_MAX_CONCURRENT",
		apply:   func(cfg *Config, v any) { cfg.Generator.MaxConcurrent = v.(int) },
		extract: func(cfg Config) any { return cfg.Generator.MaxConcurrent },
	},
	{
		key: "storage.driver", typ: kString, env: "LESSONFORGE_STORAGE_DRIVER",
		apply:   func(cfg *Config, v any) { cfg.Storage.Driver = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.Driver },
	},
	{
		key: "storage.data_dir", typ: kString, env: "LESSONFORGE_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "LESSONFORGE_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
