// Package config resolves clido settings from defaults, a TOML file, the
// environment and command-line flags, in that order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultLogLevel = "warn"
	DefaultTheme    = "classic"
	configFileName  = "config.toml"
	appDirName      = "clido"
)

// Config holds every tunable of a clido invocation.
type Config struct {
	TodoPath string `toml:"todo_path"`
	LogLevel string `toml:"log_level"`
	Theme    string `toml:"theme"`
	NoColor  bool   `toml:"no_color"`
	Lock     bool   `toml:"lock"`

	// File is the config file that was read, empty when none was.
	File string `toml:"-"`
}

// DefaultTodoPath is where the TODO file lives unless configured otherwise.
func DefaultTodoPath() string {
	if runtime.GOOS == "windows" {
		return "TODOS.bin"
	}
	return "/usr/local/share/clido/TODOS.bin"
}

func setDefaults(cfg *Config) {
	cfg.TodoPath = DefaultTodoPath()
	cfg.LogLevel = DefaultLogLevel
	cfg.Theme = DefaultTheme
	cfg.NoColor = false
	cfg.Lock = true
}

// flagValues are the root flags before they are merged into a Config.
type flagValues struct {
	config   string
	todoPath string
	logLevel string
	theme    string
	noColor  bool
	noLock   bool
}

// registerFlags adds the root flags to fs.
func registerFlags(fs *flag.FlagSet) *flagValues {
	fv := &flagValues{}
	fs.StringVar(&fv.config, "config", "", "path to a TOML config file")
	fs.StringVar(&fv.todoPath, "todo-path", "", "path to the TODO file")
	fs.StringVar(&fv.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&fv.theme, "theme", "", "output theme: classic, neon, mono")
	fs.BoolVar(&fv.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&fv.noLock, "no-lock", false, "don't lock the TODO file while using it")
	return fv
}

// Load parses args with fs and builds the effective Config. It returns the
// positional arguments left after the flags.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	fv := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := &Config{}
	setDefaults(cfg)

	path := fv.config
	explicit := path != ""
	if !explicit {
		if v := os.Getenv("CLIDO_CONFIG"); v != "" {
			path, explicit = v, true
		} else {
			path = userConfigFile()
		}
	}
	if path != "" {
		path = expandPath(path)
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.File = path
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "todo-path":
			cfg.TodoPath = fv.todoPath
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "theme":
			cfg.Theme = fv.theme
		case "no-color":
			cfg.NoColor = fv.noColor
		case "no-lock":
			cfg.Lock = !fv.noLock
		}
	})

	cfg.TodoPath = expandPath(cfg.TodoPath)
	return cfg, fs.Args(), nil
}

// loadConfigFile loads TOML config from the given file over cfg.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from CLIDO_* environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("CLIDO_TODO_PATH"); v != "" {
		cfg.TodoPath = v
	}
	if v := os.Getenv("CLIDO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CLIDO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("CLIDO_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLIDO_NO_COLOR: %w", err)
		}
		cfg.NoColor = b
	}
	if v := os.Getenv("CLIDO_LOCK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLIDO_LOCK: %w", err)
		}
		cfg.Lock = b
	}
	return nil
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, configFileName)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
