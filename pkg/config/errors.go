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
	"errors"
	"fmt"
)

var (
	// ErrConversion is matched by *ConversionError.
	ErrConversion = errors.New("configuration value conversion failed")
	// ErrInvalidSchema is matched by *SchemaError.
	ErrInvalidSchema = errors.New("invalid configuration schema")
)

// ConversionError reports a raw value that could not be parsed as the field's
// declared kind.  The field is left unresolved; its default is not substituted.
type ConversionError struct {
	Field  string
	Source string
	Raw    string
	Kind   Kind
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %q (from %s) to %v: %v",
		e.Field, e.Raw, e.Source, e.Kind, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// LookupError reports a source that failed, rather than missed, while looking up a
// field.  The underlying error is typically a *source.MalformedKeyError.
type LookupError struct {
	Field  string
	Source string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("field %q: lookup in %s failed: %v", e.Field, e.Source, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// SchemaError reports a declaration that can't be resolved at all.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "invalid schema: " + e.Reason
	}
	return fmt.Sprintf("invalid schema: field %q: %s", e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}
