package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes cfg as TOML. The output loads back into an equal Config.
func Encode(w io.Writer, cfg *Config) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
