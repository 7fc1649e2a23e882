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

// Package source contains the providers of raw configuration values.
//
// A Source answers a single question: "what is the raw string value for this key?".
// It can say "absent" (found == false, err == nil), which is the normal outcome when
// it has nothing to offer, or it can fail with an error when the key or the backing
// data makes an answer impossible.  Empty values are always reported as absent.
//
// File-backed sources read and parse their file once, at construction time.  After
// that, every Source is read-only and safe for concurrent use.
package source

import (
	"errors"
	"fmt"
	"strings"
)

// Source is a provider of raw configuration values keyed by name.
type Source interface {
	// Name identifies the source in logs, errors and provenance information.
	Name() string
	// Lookup returns the raw value for key.  found is false if the source has no
	// (non-empty) value for the key.
	Lookup(key string) (value string, found bool, err error)
}

var (
	// ErrSourceUnavailable is matched by errors returned when a file-backed source
	// cannot read or parse its backing file.
	ErrSourceUnavailable = errors.New("configuration source unavailable")
	// ErrMalformedKey is matched by errors returned when a key cannot be split into
	// the parts that a source needs.
	ErrMalformedKey = errors.New("malformed configuration key")
	// ErrUnrepresentableValue is matched by errors returned when a source holds a
	// value for the key that cannot be rendered as a single string.
	ErrUnrepresentableValue = errors.New("value cannot be represented as a string")
)

// SourceUnavailableError reports that a source's backing file could not be loaded.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("failed to load configuration from %s: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// MalformedKeyError reports a key that does not have the <section>_<field> shape.
type MalformedKeyError struct {
	Source string
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("%s: malformed key %q: %s", e.Source, e.Key, e.Reason)
}

func (e *MalformedKeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

// ValueError reports a value that exists but can't be handed out as a raw string,
// for example a TOML table or a YAML list.
type ValueError struct {
	Source string
	Key    string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: value for %q: %v", e.Source, e.Key, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func (e *ValueError) Is(target error) bool {
	return target == ErrUnrepresentableValue
}

// splitSectionKey splits a key of the form <section>_<field> at the first
// underscore.  ok is false if there is no underscore at all; a key with an
// empty section or field part is reported as an error.
func splitSectionKey(sourceName, key string) (section, field string, ok bool, err error) {
	if key == "" {
		return "", "", false, &MalformedKeyError{Source: sourceName, Key: key, Reason: "key is empty"}
	}
	section, field, ok = strings.Cut(key, "_")
	if !ok {
		return "", key, false, nil
	}
	if section == "" || field == "" {
		return "", "", false, &MalformedKeyError{
			Source: sourceName,
			Key:    key,
			Reason: "expected <section>_<field> with both parts non-empty",
		}
	}
	return section, field, true, nil
}
