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

package config_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/projectcalico/confloader/pkg/config"
	"github.com/projectcalico/confloader/pkg/source"
)

type Port int

type serverSettings struct {
	Path     string        `config:"path"`
	Host     string        `config:"server_host;localhost"`
	Port     Port          `config:"server_port;8080"`
	Debug    bool          `config:"server_debug;false"`
	Ratio    float64       `config:"server_ratio;0.5"`
	Timeout  time.Duration `config:"server_timeout;30s"`
	Workers  int           `config:"workers"`
	Untagged string
	Skipped  string `config:"-"`
}

var _ = Describe("SchemaFromStruct", func() {
	It("should derive fields from tags and types", func() {
		fields, err := SchemaFromStruct(&serverSettings{Path: "/usr/bin", Workers: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(fields).To(Equal([]Field{
			StringField("path", "/usr/bin"),
			StringField("server_host", "localhost"),
			IntField("server_port", 8080),
			BoolField("server_debug", false),
			FloatField("server_ratio", 0.5),
			DurationField("server_timeout", 30*time.Second),
			IntField("workers", 3),
		}))
	})

	It("should default the name to the lower-cased field name", func() {
		var s struct {
			Region string `config:";eu-west"`
		}
		fields, err := SchemaFromStruct(&s)
		Expect(err).NotTo(HaveOccurred())
		Expect(fields).To(Equal([]Field{StringField("region", "eu-west")}))
	})

	DescribeTable("bad declarations",
		func(dst interface{}) {
			_, err := SchemaFromStruct(dst)
			Expect(err).To(MatchError(ErrInvalidSchema))
			var schemaErr *SchemaError
			Expect(errors.As(err, &schemaErr)).To(BeTrue())
		},
		Entry("not a pointer", serverSettings{}),
		Entry("nil pointer", (*serverSettings)(nil)),
		Entry("pointer to non-struct", new(int)),
		Entry("unsupported type", &struct {
			Hosts []string `config:"hosts"`
		}{}),
		Entry("unexported field", &struct {
			port int `config:"port"`
		}{}),
		Entry("invalid default", &struct {
			Port int `config:"port;eighty"`
		}{}),
	)
})

var _ = Describe("Populate", func() {
	It("should fill the struct from sources and defaults", func() {
		env := source.NewEnvironmentSourceFromEnviron([]string{"PATH=/opt/bin", "SERVER_DEBUG=yes"})
		ini, err := source.NewIniSourceFromData("app.ini", []byte("[server]\nport=9090\ntimeout=1m\nhost=ini-host"))
		Expect(err).NotTo(HaveOccurred())

		s := serverSettings{Workers: 2, Untagged: "kept", Skipped: "kept too"}
		Expect(Populate(&s, env, ini)).To(Succeed())
		Expect(s).To(Equal(serverSettings{
			Path:     "/opt/bin",
			Host:     "ini-host",
			Port:     9090,
			Debug:    true,
			Ratio:    0.5,
			Timeout:  time.Minute,
			Workers:  2,
			Untagged: "kept",
			Skipped:  "kept too",
		}))
	})

	It("should leave fields that fail to convert untouched", func() {
		src := source.NewMapSource("overrides", map[string]string{
			"server_port":  "not-a-port",
			"server_ratio": "0.75",
		})
		s := serverSettings{Port: 1}
		err := Populate(&s, src)
		Expect(err).To(MatchError(ErrConversion))
		var convErr *ConversionError
		Expect(errors.As(err, &convErr)).To(BeTrue())
		Expect(convErr.Field).To(Equal("server_port"))
		Expect(s.Port).To(Equal(Port(1)))
		Expect(s.Ratio).To(Equal(0.75))
		Expect(s.Host).To(Equal("localhost"))
	})

	It("should reject an invalid target without touching it", func() {
		Expect(Populate(serverSettings{})).To(MatchError(ErrInvalidSchema))
	})

	It("should reject duplicate names", func() {
		var s struct {
			A string `config:"name"`
			B string `config:"NAME"`
		}
		Expect(Populate(&s)).To(MatchError(ErrInvalidSchema))
	})
})
