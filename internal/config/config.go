// Package config loads the optional ".grammatica.toml" file that supplies
// CLI defaults (notably the default output format, so a user invoking the
// CLI inside a course repo doesn't have to repeat "-l" on every call). Grounded on github.com/dekarrin/tunaq's internal/tqw package,
// which reads its world file headers with github.com/BurntSushi/toml's
// Unmarshal.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the config file name looked for in the current directory.
const FileName = ".grammatica.toml"

// Config holds CLI-wide defaults overridable by command-line flags.
type Config struct {
	// DefaultOutput is the output format used when neither -l nor -j is
	// given: one of "text", "latex", or "json".
	DefaultOutput string `toml:"default_output"`

	// DefaultMode names an automaton mode: one of "lr0", "lr1", or "lalr".
	// It is parsed but the CLI does not read it; the CLI takes the mode
	// from the requested output name.
	DefaultMode string `toml:"default_mode"`

	// EliminateLeftRecursion, if true, makes the CLI run left-recursion
	// elimination before analysis even when "elf" is not given. No flag
	// turns it off.
	EliminateLeftRecursion bool `toml:"eliminate_left_recursion"`
}

// Defaults returns the built-in configuration used when no config file is
// present.
func Defaults() Config {
	return Config{
		DefaultOutput: "text",
		DefaultMode:   "lalr",
	}
}

// Load reads and parses path, returning Defaults() unchanged (with no
// error) if path does not exist.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
