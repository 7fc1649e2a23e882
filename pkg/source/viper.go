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

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ViperSource adapts an existing viper instance.  Keys are passed to viper
// unchanged, so they follow viper's own key and env-binding rules.  If a
// <section>_<field> key isn't set as given, it is retried as viper's nested
// <section>.<field> form; a key set as given always wins.
type ViperSource struct {
	v *viper.Viper
}

func NewViperSource(v *viper.Viper) *ViperSource {
	return &ViperSource{v: v}
}

func (s *ViperSource) Name() string {
	return "viper"
}

func (s *ViperSource) Lookup(key string) (string, bool, error) {
	viperKey := key
	if !s.v.IsSet(viperKey) {
		section, field, ok := strings.Cut(key, "_")
		if !ok {
			return "", false, nil
		}
		viperKey = section + "." + field
		if !s.v.IsSet(viperKey) {
			return "", false, nil
		}
	}
	raw := s.v.Get(viperKey)
	switch raw.(type) {
	case map[string]interface{}, []interface{}:
		return "", false, &ValueError{Source: s.Name(), Key: key, Err: ErrUnrepresentableValue}
	}
	value, err := cast.ToStringE(raw)
	if err != nil {
		return "", false, &ValueError{Source: s.Name(), Key: key, Err: err}
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

var _ Source = (*ViperSource)(nil)
