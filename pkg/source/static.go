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
)

// MapSource serves values from a fixed map.  Keys are matched case-insensitively.
// It is useful for programmatic overrides, which are typically placed first in the
// source list so that they win over everything else.
type MapSource struct {
	name   string
	values map[string]string
}

// NewMapSource copies values; later changes to the caller's map have no effect.
func NewMapSource(name string, values map[string]string) *MapSource {
	s := &MapSource{name: name, values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[strings.ToLower(k)] = v
	}
	return s
}

func (s *MapSource) Name() string {
	return s.name
}

func (s *MapSource) Lookup(key string) (string, bool, error) {
	value := s.values[strings.ToLower(key)]
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

var _ Source = (*MapSource)(nil)
