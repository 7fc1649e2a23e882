// Copyright (c) 2026 Tigera, Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/projectcalico/confloader/pkg/source"
)

// LoaderSettings describes the standard chain of sources: the environment, then an
// optional INI file, then an optional .env file.
type LoaderSettings struct {
	// Minimum log level to emit to the screen, or "none" to discard log output.
	LogSeverityScreen string `default:"error" split_words:"true"`

	// INI file consulted after the environment.  Empty to skip.
	ConfigFile string `default:"" split_words:"true"`

	// .env file consulted after the INI file.  Empty to skip.
	DotenvFile string `default:"" split_words:"true"`

	// Prefix prepended to every key before it is looked up in the environment.
	EnvPrefix string `default:"" split_words:"true"`

	// Reject keys with no <section>_<field> separator in file-backed sources.
	StrictKeys bool `default:"false" split_words:"true"`
}

// Parse loads the settings from <PREFIX>_* environment variables, for example
// CONFLOADER_CONFIG_FILE with prefix "confloader".
func (s *LoaderSettings) Parse(prefix string) error {
	return envconfig.Process(prefix, s)
}

// Sources builds the source chain in priority order.  A configured file that can't
// be loaded is an error.
func (s *LoaderSettings) Sources() ([]source.Source, error) {
	sources := []source.Source{
		source.NewEnvironmentSource(source.WithPrefix(s.EnvPrefix)),
	}
	var iniOpts []source.IniOption
	if s.StrictKeys {
		iniOpts = append(iniOpts, source.WithStrictKeys())
	}
	if s.ConfigFile != "" {
		iniSource, err := source.NewIniFileSource(s.ConfigFile, iniOpts...)
		if err != nil {
			return nil, err
		}
		sources = append(sources, iniSource)
	}
	if s.DotenvFile != "" {
		dotEnvSource, err := source.NewDotEnvSource(s.DotenvFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, dotEnvSource)
	}
	log.WithField("numSources", len(sources)).Debug("Built configuration source chain")
	return sources, nil
}
