package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/glucoffee/internal/store"
)

const userKeyFile = "user_key"

// ResolveUserKey picks the record key: the explicit flag value, then
// GLUCOFFEE_USER, then a uuid persisted under the data directory so later
// invocations reach the same record.
func (c *Config) ResolveUserKey(flag string) (string, error) {
	key := strings.TrimSpace(flag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GLUCOFFEE_USER"))
	}
	if key != "" {
		if err := store.ValidateKey(key); err != nil {
			return "", err
		}
		return key, nil
	}

	path := filepath.Join(c.DataDir, userKeyFile)
	if data, err := os.ReadFile(path); err == nil {
		if key = strings.TrimSpace(string(data)); key != "" {
			return key, store.ValidateKey(key)
		}
	} else if !os.IsNotExist(err) {
		return "", store.Unavailable("read user key", err)
	}

	key = uuid.New().String()
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return "", store.Unavailable("create data dir", err)
	}
	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return "", store.Unavailable("write user key", err)
	}
	return key, nil
}

// ConfigPath returns the config file location: the flag, GLUCOFFEE_CONFIG, or
// config.yaml inside the default data directory.
func ConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("GLUCOFFEE_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(DefaultConfig().DataDir, "config.yaml")
}
