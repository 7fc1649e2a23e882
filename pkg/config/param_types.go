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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Metadata struct {
	Name string
	Kind Kind
}

func (m *Metadata) GetMetadata() *Metadata {
	return m
}

func (m *Metadata) parseFailed(raw, msg string) error {
	return fmt.Errorf("failed to parse config parameter %v; value %#v: %v",
		m.Name, raw, msg)
}

type param interface {
	GetMetadata() *Metadata
	Parse(raw string) (result interface{}, err error)
}

func newParam(name string, kind Kind) (param, error) {
	var p param
	switch kind {
	case KindString:
		p = &StringParam{}
	case KindInt:
		p = &IntParam{}
	case KindBool:
		p = &BoolParam{}
	case KindFloat:
		p = &FloatParam{}
	case KindDuration:
		p = &DurationParam{}
	default:
		return nil, fmt.Errorf("unknown kind %v", kind)
	}
	metadata := p.GetMetadata()
	metadata.Name = name
	metadata.Kind = kind
	return p, nil
}

type StringParam struct {
	Metadata
}

func (p *StringParam) Parse(raw string) (interface{}, error) {
	return raw, nil
}

type IntParam struct {
	Metadata
}

func (p *IntParam) Parse(raw string) (interface{}, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil {
		return nil, p.parseFailed(raw, "invalid int")
	}
	return int(value), nil
}

type BoolParam struct {
	Metadata
}

func (p *BoolParam) Parse(raw string) (interface{}, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "t", "on":
		return true, nil
	case "false", "0", "no", "n", "f", "off":
		return false, nil
	}
	return nil, p.parseFailed(raw, "invalid boolean")
}

type FloatParam struct {
	Metadata
}

func (p *FloatParam) Parse(raw string) (result interface{}, err error) {
	result, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		err = p.parseFailed(raw, "invalid float")
		result = nil
	}
	return
}

// DurationParam accepts Go duration syntax ("1m30s") or a bare number of seconds.
type DurationParam struct {
	Metadata
}

func (p *DurationParam) Parse(raw string) (interface{}, error) {
	trimmed := strings.TrimSpace(raw)
	if d, err := time.ParseDuration(trimmed); err == nil {
		return d, nil
	}
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, p.parseFailed(raw, "invalid duration")
	}
	nanos := seconds * float64(time.Second)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if math.Abs(nanos) >= float64(math.MaxInt64) {
		return nil, p.parseFailed(raw, "duration out of range")
	}
	return time.Duration(nanos), nil
}
