package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes the default config file to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}

// Template is the default config file; loading it yields Default().
const Template = `log_level = "info"

[decode]
strict_length = false
skip_unsupported = true

[encode]
compression = false
data_length_indicator = false
unsynchronization = false
padding = 1024
`
