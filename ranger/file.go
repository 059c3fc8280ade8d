package ranger

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const configFileEnvVar = "CONFIG_FILE"

// LoadFile reads the YAML file at path into environment variables not already set,
// the same way a .env file is loaded.
//
// Nested keys join with underscores and are upper cased:
//
//	port: 8080          # PORT
//	server:
//	  read_timeout: 10s # SERVER_READ_TIMEOUT
func LoadFile(path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBadConfig, path, err)
	}

	for _, key := range k.Keys() {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if os.Getenv(envKey) != "" {
			continue
		}

		if err := os.Setenv(envKey, k.String(key)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBadConfig, envKey, err)
		}
	}

	return nil
}
