package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultConfigFileName = "config.toml"

type Config struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	// Firebase web API key, used for the Identity Toolkit password flows.
	FirebaseAPIKey string `toml:"firebase_api_key"`
	// Path to the service account JSON. The FIREBASE_SERVICE_ACCOUNT env
	// var (raw JSON) takes precedence so deploys never write credentials
	// to disk.
	FirebaseServiceAccountFile string `toml:"firebase_service_account_file"`
	PrefsPath                  string `toml:"prefs_path"`
}

// LoadOrCreate reads the config file, writing the defaults first if it
// does not exist. Environment variables override the file.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("mongo_uri (or MONGODB_URI) not set")
	}
	if c.FirebaseAPIKey == "" {
		return errors.New("firebase_api_key (or FIREBASE_API_KEY) not set")
	}
	return nil
}

// ServiceAccountJSON returns the Firebase credentials, preferring the raw
// JSON env var over the configured file.
func (c Config) ServiceAccountJSON() ([]byte, error) {
	if raw := os.Getenv("FIREBASE_SERVICE_ACCOUNT"); raw != "" {
		return []byte(raw), nil
	}
	if c.FirebaseServiceAccountFile == "" {
		return nil, errors.New("firebase service account not configured")
	}
	return os.ReadFile(c.FirebaseServiceAccountFile)
}

func applyEnv(cfg Config) Config {
	cfg.Addr = getEnv("TODO_ADDR", cfg.Addr)
	cfg.MongoURI = getEnv("MONGODB_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGODB_DATABASE", cfg.MongoDatabase)
	cfg.FirebaseAPIKey = getEnv("FIREBASE_API_KEY", cfg.FirebaseAPIKey)
	cfg.FirebaseServiceAccountFile = getEnv("FIREBASE_SERVICE_ACCOUNT_FILE", cfg.FirebaseServiceAccountFile)
	cfg.PrefsPath = getEnv("TODO_PREFS_PATH", cfg.PrefsPath)
	return cfg
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Addr:          ":8080",
		MongoURI:      "",
		MongoDatabase: "todo",
		PrefsPath:     "prefs.json",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
