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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/projectcalico/confloader/pkg/config"
)

// parseFieldSpec parses a command-line field declaration of the form
// name[:kind][=default].
func parseFieldSpec(spec string) (config.Field, error) {
	decl, rawDefault, _ := strings.Cut(spec, "=")
	name, rawKind, hasKind := strings.Cut(decl, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return config.Field{}, fmt.Errorf("field spec %q: missing name", spec)
	}
	kind := config.KindString
	if hasKind {
		var err error
		kind, err = config.ParseKind(rawKind)
		if err != nil {
			return config.Field{}, fmt.Errorf("field spec %q: %w", spec, err)
		}
	}
	field, err := config.NewField(name, kind, rawDefault)
	if err != nil {
		return config.Field{}, fmt.Errorf("field spec %q: %w", spec, err)
	}
	return field, nil
}

func parseFieldSpecs(specs []string) ([]config.Field, error) {
	fields := make([]config.Field, 0, len(specs))
	var errs []error
	for _, s := range specs {
		f, err := parseFieldSpec(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fields = append(fields, f)
	}
	return fields, errors.Join(errs...)
}

// printResolved writes one "name=value (source)" line per resolved field, in
// declaration order.
func printResolved(w io.Writer, resolved *config.Resolved) error {
	for _, name := range resolved.Names() {
		value, _ := resolved.Get(name)
		if _, err := fmt.Fprintf(w, "%s=%v (%s)\n", name, value, resolved.SourceOf(name)); err != nil {
			return err
		}
	}
	return nil
}
