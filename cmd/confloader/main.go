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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"

	"github.com/projectcalico/confloader/pkg/buildinfo"
	"github.com/projectcalico/confloader/pkg/config"
	"github.com/projectcalico/confloader/pkg/logutils"
)

const usage = `confloader, resolves configuration fields from the environment and config files.

Usage:
  confloader [options] <field>...

Each <field> is name[:kind][=default], where kind is one of string (the default),
int, bool, float or duration.

Options:
  -c --config-file=<filename>  INI file consulted after the environment.
  --dotenv-file=<filename>     .env file consulted after the INI file.
  --env-prefix=<prefix>        Prefix for environment variable names.
  --strict-keys                Reject file keys without a <section>_<field> separator.
  --version                    Print the version and exit.
`

// envPrefix is the envconfig prefix for confloader's own settings, for example
// CONFLOADER_LOG_SEVERITY_SCREEN and CONFLOADER_CONFIG_FILE.
const envPrefix = "confloader"

func main() {
	// Initialise early so we can trace out config parsing.
	logutils.ConfigureEarlyLogging("CONFLOADER_LOG_SEVERITY_SCREEN")

	version := "Version:            " + buildinfo.Version + "\n" +
		"Full git commit ID: " + buildinfo.GitRevision + "\n" +
		"Build date:         " + buildinfo.BuildDate + "\n"
	arguments, err := docopt.Parse(usage, nil, true, version, false)
	if err != nil {
		println(usage)
		log.Fatalf("Failed to parse usage, exiting: %v", err)
	}
	log.WithFields(log.Fields{
		"version":   buildinfo.Version,
		"buildDate": buildinfo.BuildDate,
		"gitCommit": buildinfo.GitRevision,
	}).Info("confloader starting up")
	log.Infof("Command line arguments: %v", arguments)

	os.Exit(run(arguments, os.Stdout, os.Stderr))
}

func run(arguments map[string]interface{}, stdout, stderr io.Writer) int {
	settings := &config.LoaderSettings{}
	if err := settings.Parse(envPrefix); err != nil {
		log.WithError(err).Error("Failed to load confloader settings from the environment")
		return 1
	}
	applyArguments(settings, arguments)
	logutils.ConfigureScreenLogging(settings.LogSeverityScreen)
	log.WithField("settings", fmt.Sprintf("%+v", *settings)).Debug("Loaded settings")

	fieldSpecs, _ := arguments["<field>"].([]string)
	fields, err := parseFieldSpecs(fieldSpecs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	sources, err := settings.Sources()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	resolved, resolveErr := config.Resolve(config.NewSchema(sources...).Declare(fields...))
	if resolved != nil {
		if err := printResolved(stdout, resolved); err != nil {
			log.WithError(err).Error("Failed to write output")
			return 1
		}
	}
	if resolveErr != nil {
		fmt.Fprintln(stderr, resolveErr)
		return 1
	}
	return 0
}

// applyArguments lets command-line flags override the environment-provided settings.
func applyArguments(settings *config.LoaderSettings, arguments map[string]interface{}) {
	if v, ok := arguments["--config-file"].(string); ok {
		settings.ConfigFile = v
	}
	if v, ok := arguments["--dotenv-file"].(string); ok {
		settings.DotenvFile = v
	}
	if v, ok := arguments["--env-prefix"].(string); ok {
		settings.EnvPrefix = v
	}
	if v, ok := arguments["--strict-keys"].(bool); ok && v {
		settings.StrictKeys = true
	}
}
