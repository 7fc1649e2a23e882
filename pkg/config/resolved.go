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
	"time"
)

// DefaultSourceName is the provenance recorded for fields that took their default.
const DefaultSourceName = "<default>"

// Resolved holds the outcome of one resolution.  It is never modified after
// Resolve returns, so it can be shared freely.
type Resolved struct {
	names   []string
	values  map[string]interface{}
	sources map[string]string
	raw     map[string]string
}

func newResolved(size int) *Resolved {
	return &Resolved{
		names:   make([]string, 0, size),
		values:  make(map[string]interface{}, size),
		sources: make(map[string]string, size),
		raw:     make(map[string]string, size),
	}
}

func (r *Resolved) set(name string, value interface{}, sourceName, raw string) {
	r.names = append(r.names, name)
	r.values[name] = value
	r.sources[name] = sourceName
	if sourceName != DefaultSourceName {
		r.raw[name] = raw
	}
}

// Get returns the typed value of the named field.  ok is false if the field was
// not declared or failed to resolve.
func (r *Resolved) Get(name string) (value interface{}, ok bool) {
	value, ok = r.values[name]
	return
}

// String returns the named string field, or "" if there is no such string field.
func (r *Resolved) String(name string) string {
	v, _ := r.values[name].(string)
	return v
}

func (r *Resolved) Int(name string) int {
	v, _ := r.values[name].(int)
	return v
}

func (r *Resolved) Bool(name string) bool {
	v, _ := r.values[name].(bool)
	return v
}

func (r *Resolved) Float(name string) float64 {
	v, _ := r.values[name].(float64)
	return v
}

func (r *Resolved) Duration(name string) time.Duration {
	v, _ := r.values[name].(time.Duration)
	return v
}

// SourceOf returns the name of the source that supplied the field, DefaultSourceName
// if the default was used, or "" if the field is unknown.
func (r *Resolved) SourceOf(name string) string {
	return r.sources[name]
}

// RawValue returns the raw string that the field's value was parsed from.  ok is
// false for defaulted or unknown fields.
func (r *Resolved) RawValue(name string) (raw string, ok bool) {
	raw, ok = r.raw[name]
	return
}

// Names returns the resolved field names in declaration order.
func (r *Resolved) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// AsMap returns a copy of the name to value mapping.
func (r *Resolved) AsMap() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}
