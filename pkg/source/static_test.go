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

package source_test

import (
	"bytes"
	"errors"
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	. "github.com/projectcalico/confloader/pkg/source"
	"github.com/projectcalico/confloader/pkg/testutils"
)

var _ = Describe("DotEnvSource", func() {
	It("should serve values from the file without touching the environment", func() {
		src, err := NewDotEnvSource(testutils.TestDataFile("app.env"))
		Expect(err).NotTo(HaveOccurred())
		Expect(src.Name()).To(Equal("env file " + testutils.TestDataFile("app.env")))

		value, found, err := src.Lookup("server_port")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("9090"))

		value, found, err = src.Lookup("database_url")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("postgres://localhost/app"))

		_, found, err = src.Lookup("empty")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())

		env := NewEnvironmentSource()
		_, found, _ = env.Lookup("database_url")
		Expect(found).To(BeFalse(), "env file leaked into the process environment")
	})

	It("should report a missing file as unavailable", func() {
		_, err := NewDotEnvSource(testutils.TestDataFile("missing.env"))
		Expect(err).To(MatchError(ErrSourceUnavailable))
		Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
	})
})

var _ = Describe("MapSource", func() {
	It("should match keys case-insensitively", func() {
		src := NewMapSource("overrides", map[string]string{"Server_Port": "1234"})
		Expect(src.Name()).To(Equal("overrides"))
		value, found, err := src.Lookup("SERVER_PORT")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("1234"))
	})

	It("should copy its input", func() {
		values := map[string]string{"a": "1"}
		src := NewMapSource("overrides", values)
		values["a"] = "2"
		values["b"] = "3"
		value, _, _ := src.Lookup("a")
		Expect(value).To(Equal("1"))
		_, found, _ := src.Lookup("b")
		Expect(found).To(BeFalse())
	})

	It("should treat empty values as absent", func() {
		src := NewMapSource("overrides", map[string]string{"a": ""})
		_, found, err := src.Lookup("a")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})
})

var _ = Describe("ViperSource", func() {
	var v *viper.Viper

	BeforeEach(func() {
		v = viper.New()
		v.SetConfigType("yaml")
		Expect(v.ReadConfig(bytes.NewBufferString(`
server:
  port: 8080
  hosts: [a, b]
  name: edge
blank: ""
`))).To(Succeed())
		v.Set("server_port", 9090)
	})

	It("should stringify scalar values", func() {
		src := NewViperSource(v)
		Expect(src.Name()).To(Equal("viper"))
		value, found, err := src.Lookup("server_port")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("9090"))

		value, found, err = src.Lookup("server.port")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("8080"))
	})

	It("should fall back to the nested form of a section_field key", func() {
		v.Set("database.url", "postgres://db")
		src := NewViperSource(v)

		value, found, err := src.Lookup("server_name")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("edge"))

		value, found, err = src.Lookup("database_url")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("postgres://db"))

		_, _, err = src.Lookup("server_hosts")
		Expect(err).To(MatchError(ErrUnrepresentableValue))
	})

	It("should miss unset and empty keys", func() {
		src := NewViperSource(v)
		_, found, err := src.Lookup("server_host")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())

		_, found, err = src.Lookup("blank")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("should refuse lists and tables", func() {
		src := NewViperSource(v)
		_, _, err := src.Lookup("server.hosts")
		Expect(err).To(MatchError(ErrUnrepresentableValue))
		_, _, err = src.Lookup("server")
		Expect(err).To(MatchError(ErrUnrepresentableValue))
	})
})
