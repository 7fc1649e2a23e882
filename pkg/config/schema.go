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
	"reflect"
	"strings"
	"time"

	"github.com/projectcalico/confloader/pkg/source"
)

// Kind is the declared type of a field.  Each kind has a canonical parse from
// string and a Go type that its values (and defaults) have.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindFloat
	KindDuration
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindDuration:
		return "duration"
	}
	return fmt.Sprintf("<unknown(%v)>", uint8(k))
}

// ParseKind is the inverse of Kind.String, case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "bool", "boolean":
		return KindBool, nil
	case "float", "float64":
		return KindFloat, nil
	case "duration":
		return KindDuration, nil
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

var durationType = reflect.TypeOf(time.Duration(0))

// GoType returns the type that values of this kind have; nil for an unknown kind.
func (k Kind) GoType() reflect.Type {
	switch k {
	case KindString:
		return reflect.TypeOf("")
	case KindInt:
		return reflect.TypeOf(0)
	case KindBool:
		return reflect.TypeOf(false)
	case KindFloat:
		return reflect.TypeOf(float64(0))
	case KindDuration:
		return durationType
	}
	return nil
}

// kindForType maps a Go type back to a kind.  time.Duration has to be checked
// before the generic int64 kind.
func kindForType(t reflect.Type) (Kind, bool) {
	if t == durationType {
		return KindDuration, true
	}
	switch t.Kind() {
	case reflect.String:
		return KindString, true
	case reflect.Int:
		return KindInt, true
	case reflect.Bool:
		return KindBool, true
	case reflect.Float64:
		return KindFloat, true
	}
	return 0, false
}

// Field declares one configuration field.
type Field struct {
	Name    string
	Kind    Kind
	Default interface{}
}

func StringField(name, def string) Field {
	return Field{Name: name, Kind: KindString, Default: def}
}

func IntField(name string, def int) Field {
	return Field{Name: name, Kind: KindInt, Default: def}
}

func BoolField(name string, def bool) Field {
	return Field{Name: name, Kind: KindBool, Default: def}
}

func FloatField(name string, def float64) Field {
	return Field{Name: name, Kind: KindFloat, Default: def}
}

func DurationField(name string, def time.Duration) Field {
	return Field{Name: name, Kind: KindDuration, Default: def}
}

// NewField declares a field whose default is given as a string, parsed the same way
// as a value from a source.  An empty rawDefault gives the kind's zero value.
func NewField(name string, kind Kind, rawDefault string) (Field, error) {
	goType := kind.GoType()
	if goType == nil {
		return Field{}, &SchemaError{Field: name, Reason: fmt.Sprintf("unknown kind %v", kind)}
	}
	if rawDefault == "" {
		return Field{Name: name, Kind: kind, Default: reflect.Zero(goType).Interface()}, nil
	}
	p, err := newParam(name, kind)
	if err != nil {
		return Field{}, &SchemaError{Field: name, Reason: err.Error()}
	}
	def, err := p.Parse(rawDefault)
	if err != nil {
		return Field{}, &SchemaError{Field: name, Reason: "invalid default: " + err.Error()}
	}
	return Field{Name: name, Kind: kind, Default: def}, nil
}

func (f Field) validate() error {
	if f.Name == "" {
		return &SchemaError{Reason: "field name is empty"}
	}
	goType := f.Kind.GoType()
	if goType == nil {
		return &SchemaError{Field: f.Name, Reason: fmt.Sprintf("unknown kind %v", f.Kind)}
	}
	if f.Default == nil || reflect.TypeOf(f.Default) != goType {
		return &SchemaError{
			Field:  f.Name,
			Reason: fmt.Sprintf("default %#v is not a %v", f.Default, goType),
		}
	}
	return nil
}

// Schema is the ordered set of fields to resolve plus the ordered list of sources
// to resolve them from.  Earlier sources take priority over later ones.
type Schema struct {
	Fields  []Field
	Sources []source.Source
}

func NewSchema(sources ...source.Source) *Schema {
	return &Schema{Sources: sources}
}

// Declare appends fields to the schema and returns it, for chaining.
func (s *Schema) Declare(fields ...Field) *Schema {
	s.Fields = append(s.Fields, fields...)
	return s
}

// Validate checks the declarations: names must be non-empty and unique
// (case-insensitively, since most sources match keys that way) and each default
// must have its kind's Go type.
func (s *Schema) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, f := range s.Fields {
		if err := f.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		lower := strings.ToLower(f.Name)
		if seen[lower] {
			errs = append(errs, &SchemaError{Field: f.Name, Reason: "declared more than once"})
		}
		seen[lower] = true
	}
	for i, src := range s.Sources {
		if src == nil {
			errs = append(errs, &SchemaError{Reason: fmt.Sprintf("source %d is nil", i)})
		}
	}
	return errors.Join(errs...)
}
