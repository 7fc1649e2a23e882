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

	log "github.com/sirupsen/logrus"

	"github.com/projectcalico/confloader/pkg/source"
)

// TagName is the struct tag read by SchemaFromStruct and Populate.
const TagName = "config"

// SchemaFromStruct derives field declarations from the `config` tags of the struct
// that dst points to.  The tag format is "<name>" or "<name>;<default>"; the kind
// follows the Go type of the struct field (string, int, bool, float64 or
// time.Duration).  Without a default in the tag, the struct field's current value
// is the default.
//
// Example:
//
//	type Settings struct {
//		Path    string        `config:"path"`
//		Port    int           `config:"server_port;8080"`
//		Timeout time.Duration `config:"server_timeout;30s"`
//	}
func SchemaFromStruct(dst interface{}) ([]Field, error) {
	elem, err := structElem(dst)
	if err != nil {
		return nil, err
	}
	kind := elem.Type()

	var fields []Field
	var errs []error
	for ii := 0; ii < kind.NumField(); ii++ {
		structField := kind.Field(ii)
		tag, ok := structField.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}
		name, defaultStr, hasDefault := strings.Cut(tag, ";")
		name = strings.TrimSpace(name)
		if name == "" {
			name = strings.ToLower(structField.Name)
		}
		if !structField.IsExported() {
			errs = append(errs, &SchemaError{
				Field:  name,
				Reason: fmt.Sprintf("struct field %v is not exported", structField.Name),
			})
			continue
		}
		fieldKind, ok := kindForType(structField.Type)
		if !ok {
			errs = append(errs, &SchemaError{
				Field:  name,
				Reason: fmt.Sprintf("unsupported type %v on struct field %v", structField.Type, structField.Name),
			})
			continue
		}

		field := Field{Name: name, Kind: fieldKind}
		if hasDefault && defaultStr != "" {
			// A bad literal in a tag is a schema problem, not a lookup-time one.
			field, err = NewField(name, fieldKind, defaultStr)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		} else {
			field.Default = elem.Field(ii).Convert(fieldKind.GoType()).Interface()
		}
		log.Debugf("%v: declared field %v (%v) with default %#v", structField.Name, name, fieldKind, field.Default)
		fields = append(fields, field)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fields, nil
}

// Populate resolves the fields declared by dst's struct tags against sources (in
// priority order) and writes the values into dst.  Struct fields whose
// configuration failed to resolve are left untouched and the joined per-field
// errors are returned.
func Populate(dst interface{}, sources ...source.Source) error {
	fields, err := SchemaFromStruct(dst)
	if err != nil {
		return err
	}
	resolved, resolveErr := Resolve(NewSchema(sources...).Declare(fields...))
	if resolved == nil {
		return resolveErr
	}

	elem, _ := structElem(dst)
	kind := elem.Type()
	for ii := 0; ii < kind.NumField(); ii++ {
		structField := kind.Field(ii)
		tag, ok := structField.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ";")
		name = strings.TrimSpace(name)
		if name == "" {
			name = strings.ToLower(structField.Name)
		}
		value, ok := resolved.Get(name)
		if !ok {
			continue
		}
		elem.Field(ii).Set(reflect.ValueOf(value).Convert(structField.Type))
	}
	return resolveErr
}

func structElem(dst interface{}) (reflect.Value, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, &SchemaError{Reason: fmt.Sprintf("expected a non-nil pointer to a struct, got %T", dst)}
	}
	return v.Elem(), nil
}
