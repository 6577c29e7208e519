// Package config loads extraction options from defaults, a YAML file,
// GRADEX_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/ukaji3/gradex-go/pkg/gradex"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GRADEX"

// FileName is the config file name searched for when none is given.
const FileName = "gradex"

// Flag-backed keys. Layout keys are only read from the config file.
const (
	KeyInput  = "input"
	KeyOutput = "output"
	KeySheets = "sheets"
	KeyIndex  = "index"
)

// New returns a viper instance that searches ./gradex.yaml and
// ~/.config/gradex/gradex.yaml, or reads cfgFile when it is set.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gradex"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range []string{KeyInput, KeyOutput, KeySheets, KeyIndex} {
		// BindEnv only errors without a key.
		_ = v.BindEnv(key)
	}
	return v
}

// BindFlags makes flags override the file and environment for the keys they name.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyInput, KeyOutput, KeySheets, KeyIndex} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads the config file, if any, and decodes it over the defaults.
// It returns the file used, or "" when none was found.
func Load(v *viper.Viper) (gradex.Options, string, error) {
	opts := gradex.DefaultOptions()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return opts, "", fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, "", err
	}
	return opts, v.ConfigFileUsed(), nil
}

// Dump renders opts as YAML.
func Dump(opts gradex.Options) ([]byte, error) {
	return yaml.Marshal(opts)
}
