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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DocumentSource serves values out of a nested document (TOML or YAML) using the
// same <section>_<field> key convention as IniFileSource: the section is a
// top-level table and the field a key inside it.  Keys with no separator name
// top-level scalars.  Field names are matched case-insensitively.  A key whose
// section holds something other than a table is reported as a *ValueError.
type DocumentSource struct {
	kind       string
	name       string
	doc        map[string]interface{}
	strictKeys bool
}

// NewTOMLFileSource reads and decodes the TOML file at path.
func NewTOMLFileSource(path string, opts ...IniOption) (*DocumentSource, error) {
	return loadDocument("TOML file", path, func(data []byte, doc *map[string]interface{}) error {
		_, err := toml.Decode(string(data), doc)
		return err
	}, opts)
}

// NewYAMLFileSource reads and decodes the YAML file at path.
func NewYAMLFileSource(path string, opts ...IniOption) (*DocumentSource, error) {
	return loadDocument("YAML file", path, func(data []byte, doc *map[string]interface{}) error {
		return yaml.Unmarshal(data, doc)
	}, opts)
}

func loadDocument(
	kind, path string,
	decode func([]byte, *map[string]interface{}) error,
	opts []IniOption,
) (*DocumentSource, error) {
	logCxt := log.WithFields(log.Fields{"path": path, "kind": kind})
	logCxt.Info("Loading configuration file")
	data, err := os.ReadFile(path)
	if err != nil {
		logCxt.WithError(err).Error("Failed to read configuration file")
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	var doc map[string]interface{}
	if err := decode(data, &doc); err != nil {
		logCxt.WithError(err).Error("Failed to parse configuration file")
		return nil, &SourceUnavailableError{Path: path, Err: fmt.Errorf("parse %s: %w", kind, err)}
	}

	// Options are shared with the INI source; only the key strictness applies.
	settings := &IniFileSource{}
	for _, o := range opts {
		o(settings)
	}
	return &DocumentSource{
		kind:       kind,
		name:       path,
		doc:        doc,
		strictKeys: settings.strictKeys,
	}, nil
}

func (s *DocumentSource) Name() string {
	return s.kind + " " + s.name
}

func (s *DocumentSource) Lookup(key string) (string, bool, error) {
	section, field, ok, err := splitSectionKey(s.Name(), key)
	if err != nil {
		return "", false, err
	}

	table := s.doc
	if ok {
		raw, present := lookupFold(s.doc, section)
		if !present {
			return "", false, nil
		}
		table, err = cast.ToStringMapE(raw)
		if err != nil {
			return "", false, &ValueError{
				Source: s.Name(),
				Key:    key,
				Err:    fmt.Errorf("%w: section %q is a %T, not a table", ErrUnrepresentableValue, section, raw),
			}
		}
	} else if s.strictKeys {
		return "", false, &MalformedKeyError{
			Source: s.Name(),
			Key:    key,
			Reason: "expected <section>_<field>, no '_' separator",
		}
	}

	raw, present := lookupFold(table, field)
	if !present || raw == nil {
		return "", false, nil
	}
	switch raw.(type) {
	case map[string]interface{}, map[interface{}]interface{}, []interface{}, []map[string]interface{}:
		return "", false, &ValueError{
			Source: s.Name(),
			Key:    key,
			Err:    fmt.Errorf("%w: got %T", ErrUnrepresentableValue, raw),
		}
	}
	value, err := cast.ToStringE(raw)
	if err != nil {
		return "", false, &ValueError{Source: s.Name(), Key: key, Err: errors.Join(ErrUnrepresentableValue, err)}
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// lookupFold prefers an exact match and falls back to a case-insensitive one.  If
// several keys differ only by case, the lexically smallest wins so that lookups
// are stable.
func lookupFold(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	match := ""
	found := false
	for k := range m {
		if strings.EqualFold(k, key) && (!found || k < match) {
			match = k
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return m[match], true
}

var _ Source = (*DocumentSource)(nil)
