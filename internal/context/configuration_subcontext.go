package context

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// envPrefix selects which environment variables are folded into the
// configuration map.
const envPrefix = "MSH_"

// configurationSubcontext holds the layered configuration map.
// Priority (highest to lowest): environment variables > local .env >
// config-dir .env > defaults.
type configurationSubcontext struct {
	config map[string]string
	mu     sync.RWMutex
}

func newConfigurationSubcontext() *configurationSubcontext {
	return &configurationSubcontext{
		config: make(map[string]string),
	}
}

// Load populates the configuration map from all sources in priority order
// (lowest first, so later sources override earlier ones).
func (c *configurationSubcontext) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = map[string]string{
		"MSH_LOG_LEVEL": "info",
	}

	c.loadDotEnv(configDirEnvPath())
	c.loadDotEnv(".env")

	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 && strings.HasPrefix(parts[0], envPrefix) {
			c.config[parts[0]] = parts[1]
		}
	}
	return nil
}

// loadDotEnv merges one .env file into the map. A missing or unreadable
// file is not an error; the layer is simply skipped.
func (c *configurationSubcontext) loadDotEnv(path string) {
	if path == "" {
		return
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return
	}
	for key, value := range values {
		c.config[key] = value
	}
}

// GetConfigValue retrieves a configuration value by key.
func (c *configurationSubcontext) GetConfigValue(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.config[key]
	return value, ok
}

// configDirEnvPath returns the path of the user-level .env file, or ""
// when no home directory is available.
func configDirEnvPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".modernish", ".env")
}
