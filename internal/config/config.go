package config

import (
	"bytes"
	"fmt"
	"github.com/spf13/viper"
	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/geometry"
	"gopkg.in/yaml.v2"
	"os"
	"reflect"
	"strings"
	"time"
)

const (
	defPlaceholder      = "~"
	defQuitKey          = "q"
	defIdleTimeout      = 100 * time.Millisecond
	defGeometryStrategy = string(geometry.Query)
	defLogLevel         = "INFO"

	EnvVarPrefix = "JOT"
)

var CLIConfig *Config
var replacer = strings.NewReplacer(".", "_")

type Config struct {
	Editor   *Editor   `mapstructure:"editor" yaml:"editor"`
	Terminal *Terminal `mapstructure:"terminal" yaml:"terminal"`
	Geometry *Geometry `mapstructure:"geometry" yaml:"geometry"`
	Log      *Log      `mapstructure:"log" yaml:"log"`
}

type Editor struct {
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`
	QuitKey     string `mapstructure:"quit_key" yaml:"quit_key"`
}

type Terminal struct {
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}

type Geometry struct {
	Strategy string `mapstructure:"strategy" yaml:"strategy"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Editor: &Editor{
			Placeholder: defPlaceholder,
			QuitKey:     defQuitKey,
		},
		Terminal: &Terminal{
			IdleTimeout: defIdleTimeout,
		},
		Geometry: &Geometry{
			Strategy: defGeometryStrategy,
		},
		Log: &Log{
			Level: defLogLevel,
		},
	}
}

// NewConfig loads defaults, then cfgFile when one is named, then JOT_* environment variables into
// CLIConfig.
func NewConfig(cfgFile string) error {
	c, err := Load(cfgFile)
	if err != nil {
		return err
	}
	CLIConfig = c
	return nil
}

func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	c := DefaultConfig()

	// Viper needs to know a key exists before an environment variable can override it.
	// https://github.com/spf13/viper/issues/188
	if b, err := yaml.Marshal(DefaultConfig()); err != nil {
		return nil, err
	} else {
		v.SetConfigType("yaml")
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			return nil, err
		}
	}

	if cfgFile != "" {
		if fi, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		} else if fi.IsDir() {
			return nil, fmt.Errorf("config file %s is a directory", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()
	if err := bindVars(v, reflect.TypeOf(*c), ""); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

// bindVars walks the mapstructure tags so nested keys pick up their environment variables on load.
func bindVars(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		switch {
		case field.Type.Kind() == reflect.Struct:
			if err := bindVars(v, field.Type, tag+"."); err != nil {
				return err
			}
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct:
			if err := bindVars(v, field.Type.Elem(), tag+"."); err != nil {
				return err
			}
		default:
			if err := v.BindEnv(tag); err != nil {
				return fmt.Errorf("bind environment variable for %s: %w", tag, err)
			}
		}
	}
	return nil
}

// Validate rejects settings the editor cannot run with before the terminal is touched.
func (c *Config) Validate() error {
	if _, err := geometry.ParseStrategy(c.Geometry.Strategy); err != nil {
		return err
	}
	if _, err := c.QuitKey(); err != nil {
		return err
	}
	if c.Terminal.IdleTimeout <= 0 {
		return fmt.Errorf("terminal.idle_timeout must be positive, got %v", c.Terminal.IdleTimeout)
	}
	if c.Editor.Placeholder == "" {
		return fmt.Errorf("editor.placeholder must not be empty")
	}
	var level log.Level
	if !level.UnmarshalText([]byte(c.Log.Level)) {
		return fmt.Errorf("log.level must be DEBUG, INFO, WARN or ERROR, got %q", c.Log.Level)
	}
	return nil
}

// QuitKey returns the letter that, held with Ctrl, quits the editor.
func (c *Config) QuitKey() (byte, error) {
	k := strings.ToLower(strings.TrimSpace(c.Editor.QuitKey))
	if len(k) != 1 || k[0] < 'a' || k[0] > 'z' {
		return 0, fmt.Errorf("editor.quit_key must be a single letter, got %q", c.Editor.QuitKey)
	}
	return k[0], nil
}

func (c *Config) Strategy() geometry.Strategy {
	s, err := geometry.ParseStrategy(c.Geometry.Strategy)
	if err != nil {
		return geometry.Query
	}
	return s
}
