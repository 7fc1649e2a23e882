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
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

type EnvOption func(*EnvironmentSource)

// WithPrefix makes the source look up <PREFIX><KEY> instead of <KEY>.  The prefix
// is upper-cased along with the key.
func WithPrefix(prefix string) EnvOption {
	return func(s *EnvironmentSource) {
		s.prefix = prefix
	}
}

// EnvironmentSource looks keys up as upper-cased environment variable names.  A
// variable that is set to the empty string is treated exactly like an unset one.
type EnvironmentSource struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvironmentSource returns a source backed by the live process environment.
func NewEnvironmentSource(opts ...EnvOption) *EnvironmentSource {
	s := &EnvironmentSource{lookup: os.LookupEnv}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewEnvironmentSourceFromEnviron returns a source backed by a snapshot of an
// environment in the KEY=value form returned by os.Environ().  Entries without an
// '=' are ignored; for duplicate names the last entry wins, as it does for exec.
func NewEnvironmentSourceFromEnviron(environ []string, opts ...EnvOption) *EnvironmentSource {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.WithField("entry", kv).Debug("Ignoring environment entry with no '='")
			continue
		}
		vars[name] = value
	}
	s := &EnvironmentSource{
		lookup: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *EnvironmentSource) Name() string {
	return "environment variable"
}

// VarName returns the environment variable name consulted for key.
func (s *EnvironmentSource) VarName(key string) string {
	return strings.ToUpper(s.prefix + key)
}

func (s *EnvironmentSource) Lookup(key string) (string, bool, error) {
	value, ok := s.lookup(s.VarName(key))
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

var _ Source = (*EnvironmentSource)(nil)
