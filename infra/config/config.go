package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	path      = "infra/config"
	envPrefix = "GRANULO"
)

// Load loads the config document for the given key from the config directory into v.
// The config directory is resolved against the working directory.
// Environment variables prefixed with GRANULO override the document values.
func Load(key string, v interface{}) error {
	vp := newViper()
	vp.SetConfigName(key)
	vp.AddConfigPath(path)
	return read(vp, key, v)
}

// LoadFile loads the config from the given file into v.
func LoadFile(file string, v interface{}) error {
	vp := newViper()
	vp.SetConfigFile(file)
	return read(vp, file, v)
}

// NotFound reports whether err means that no config document exists for the key.
func NotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf)
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vp.AutomaticEnv()
	return vp
}

func read(vp *viper.Viper, key string, v interface{}) error {
	if err := vp.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config for %s: %w", key, err)
	}
	if err := vp.Unmarshal(v); err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}
	log.Info().Str("config", key).Str("file", vp.ConfigFileUsed()).Msg("loaded config")
	return nil
}
