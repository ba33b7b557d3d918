package config

import (
	"os"
	"path"
	"testing"

	"github.com/matryer/is"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	is := is.New(t)

	file := path.Join(t.TempDir(), "config.toml")
	cfg, err := LoadOrCreate(file)
	is.NoErr(err)
	is.Equal(cfg.Addr, ":8080")
	is.Equal(cfg.MongoDatabase, "todo")

	_, err = os.Stat(file)
	is.NoErr(err) // the default file was written
}

func TestLoadOrCreate_ReadsFile(t *testing.T) {
	is := is.New(t)

	file := path.Join(t.TempDir(), "config.toml")
	body := "addr = \":9000\"\nmongo_uri = \"mongodb://localhost:27017\"\nfirebase_api_key = \"key-1\"\n"
	is.NoErr(os.WriteFile(file, []byte(body), 0o644))

	cfg, err := LoadOrCreate(file)
	is.NoErr(err)
	is.Equal(cfg.Addr, ":9000")
	is.Equal(cfg.MongoURI, "mongodb://localhost:27017")
	is.NoErr(cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	is := is.New(t)

	file := path.Join(t.TempDir(), "config.toml")
	is.NoErr(os.WriteFile(file, []byte("addr = \":9000\"\n"), 0o644))

	t.Setenv("TODO_ADDR", ":7777")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")

	cfg, err := LoadOrCreate(file)
	is.NoErr(err)
	is.Equal(cfg.Addr, ":7777")
	is.Equal(cfg.MongoURI, "mongodb://db:27017")
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	var cfg Config
	is.True(cfg.Validate() != nil) // missing mongo uri

	cfg.MongoURI = "mongodb://localhost:27017"
	is.True(cfg.Validate() != nil) // missing api key

	cfg.FirebaseAPIKey = "key-1"
	is.NoErr(cfg.Validate())
}
