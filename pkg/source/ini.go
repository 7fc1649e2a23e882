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
	"fmt"
	"os"

	"github.com/go-ini/ini"
	log "github.com/sirupsen/logrus"
)

type IniOption func(*IniFileSource)

// WithStrictKeys makes keys without a <section>_<field> separator an error
// instead of a lookup in the default section.
func WithStrictKeys() IniOption {
	return func(s *IniFileSource) {
		s.strictKeys = true
	}
}

// IniFileSource looks up <section>_<field> keys in a parsed INI document.
//
// Option names are case-insensitive, section names are not.  If the section exists
// but doesn't have the option, the [DEFAULT] section is consulted.  A missing
// section is a normal miss, never an error.
type IniFileSource struct {
	name       string
	file       *ini.File
	sections   map[string]bool
	strictKeys bool
}

// NewIniFileSource reads and parses the INI file at path.  Failure to read or parse
// the file is reported as a *SourceUnavailableError.
func NewIniFileSource(path string, opts ...IniOption) (*IniFileSource, error) {
	logCxt := log.WithField("path", path)
	logCxt.Info("Loading INI configuration file")
	data, err := os.ReadFile(path)
	if err != nil {
		logCxt.WithError(err).Error("Failed to read INI configuration file")
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	return NewIniSourceFromData(path, data, opts...)
}

// NewIniSourceFromData parses INI data held in memory.  name is used to identify
// the source in errors and provenance.
func NewIniSourceFromData(name string, data []byte, opts ...IniOption) (*IniFileSource, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
	}, data)
	if err != nil {
		log.WithError(err).WithField("name", name).Error("Failed to parse INI configuration")
		return nil, &SourceUnavailableError{Path: name, Err: fmt.Errorf("parse INI: %w", err)}
	}

	s := &IniFileSource{
		name:     name,
		file:     file,
		sections: map[string]bool{},
	}
	for _, sec := range file.SectionStrings() {
		s.sections[sec] = true
	}
	for _, o := range opts {
		o(s)
	}
	log.WithFields(log.Fields{
		"name":     name,
		"sections": file.SectionStrings(),
	}).Debug("Parsed INI configuration")
	return s, nil
}

func (s *IniFileSource) Name() string {
	return "INI file " + s.name
}

func (s *IniFileSource) Lookup(key string) (string, bool, error) {
	section, option, ok, err := splitSectionKey(s.Name(), key)
	if err != nil {
		return "", false, err
	}
	if !ok {
		if s.strictKeys {
			return "", false, &MalformedKeyError{
				Source: s.Name(),
				Key:    key,
				Reason: "expected <section>_<field>, no '_' separator",
			}
		}
		section = ini.DefaultSection
	}

	if !s.sections[section] {
		log.WithFields(log.Fields{"key": key, "section": section}).Debug("No such INI section")
		return "", false, nil
	}
	sec, err := s.file.GetSection(section)
	if err != nil {
		return "", false, fmt.Errorf("%s: section %q: %w", s.Name(), section, err)
	}

	if !sec.HasKey(option) {
		if section == ini.DefaultSection {
			return "", false, nil
		}
		sec, err = s.file.GetSection(ini.DefaultSection)
		if err != nil {
			return "", false, fmt.Errorf("%s: default section: %w", s.Name(), err)
		}
		if !sec.HasKey(option) {
			return "", false, nil
		}
	}

	k, err := sec.GetKey(option)
	if err != nil {
		return "", false, fmt.Errorf("%s: option %q: %w", s.Name(), option, err)
	}
	value := k.String()
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

var _ Source = (*IniFileSource)(nil)
