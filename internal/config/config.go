// Copyright (C) 2021  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the json configuration file into viper.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/log"
)

// ErrConfig is returned if the configuration is missing, malformed or
// incomplete.
var ErrConfig = errors.New("config: invalid configuration")

// EnvPrefix is the prefix of environment variables overriding configuration
// keys.
const EnvPrefix = "BRIEFTAUBE"

var secretKeys = map[string]bool{
	"pass":      true,
	"secretkey": true,
}

func init() {
	viper.SetDefault("sep", ",")
	viper.SetDefault("log.level", "info")
}

// Setup enables overrides from environment variables. "log.level" is read
// from "BRIEFTAUBE_LOG_LEVEL".
func Setup() {
	viper.SetTypeByDefaultValue(true)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix(EnvPrefix)
}

// Load reads the json configuration file filename from fs.
func Load(fs afero.Fs, filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: no configuration file provided", ErrConfig)
	}

	log.Info().Str("filename", filename).Msg("loading configuration")

	viper.SetFs(fs)
	viper.SetConfigFile(filename)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: could not load %q: %w", ErrConfig, filename, err)
	}

	return nil
}

// Require checks that every key has a non-empty value.
func Require(keys ...string) error {
	var missing []string

	for _, key := range keys {
		if viper.GetString(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfig, strings.Join(missing, ", "))
	}

	return nil
}

// Separator returns the configured list separator.
func Separator() string {
	return viper.GetString("sep")
}

// Print logs every configuration key on debug level. Secrets are masked.
func Print() {
	keys := viper.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		value := viper.Get(key)
		if secretKeys[key] && viper.GetString(key) != "" {
			value = "***"
		}

		v, _ := json.Marshal(value)
		log.Debug().Str("key", key).RawJSON("value", v).Msg("configuration")
	}
}
