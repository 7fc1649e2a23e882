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

package source

import (
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// DotEnvSource serves values from a .env file, using the same upper-cased naming
// as EnvironmentSource.  The file is not exported into the process environment.
type DotEnvSource struct {
	path string
	vars map[string]string
}

func NewDotEnvSource(path string) (*DotEnvSource, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("Failed to read env file")
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	log.WithFields(log.Fields{"path": path, "numVars": len(vars)}).Info("Loaded env file")
	return &DotEnvSource{path: path, vars: vars}, nil
}

func (s *DotEnvSource) Name() string {
	return "env file " + s.path
}

func (s *DotEnvSource) Lookup(key string) (string, bool, error) {
	value := s.vars[strings.ToUpper(key)]
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

var _ Source = (*DotEnvSource)(nil)
