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
	"errors"
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/projectcalico/confloader/pkg/source"
	"github.com/projectcalico/confloader/pkg/testutils"
)

const iniServerOnly = `[server]
port=8080`

const iniNoServer = `[client]
port=8080`

var _ = DescribeTable("INI data lookups",
	func(data, key, expectedValue string, expectedFound bool) {
		src, err := NewIniSourceFromData("inline", []byte(data))
		Expect(err).NotTo(HaveOccurred())
		value, found, err := src.Lookup(key)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(Equal(expectedFound))
		Expect(value).To(Equal(expectedValue))
	},
	Entry("section and option present", iniServerOnly, "server_port", "8080", true),
	Entry("no such section", iniNoServer, "server_port", "", false),
	Entry("no such option", iniServerOnly, "server_host", "", false),
	Entry("option names are case-insensitive", iniServerOnly, "server_PORT", "8080", true),
	Entry("section names are case-sensitive", iniServerOnly, "SERVER_port", "", false),
	Entry("field keeps later underscores", "[database]\nmax_connections=20", "database_max_connections", "20", true),
	Entry("key without separator reads the default section", "timeout=5\n[server]\nport=1", "timeout", "5", true),
	Entry("key without separator, no default value", iniServerOnly, "timeout", "", false),
	Entry("empty value is absent", "[server]\nport=", "server_port", "", false),
	Entry("empty document", "", "server_port", "", false),
)

var _ = Describe("IniFileSource", func() {
	var src *IniFileSource

	BeforeEach(func() {
		var err error
		src, err = NewIniFileSource(testutils.TestDataFile("app.ini"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should name itself after the file", func() {
		Expect(src.Name()).To(Equal("INI file " + testutils.TestDataFile("app.ini")))
	})

	DescribeTable("lookups in the test file",
		func(key, expectedValue string, expectedFound bool) {
			value, found, err := src.Lookup(key)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(expectedFound))
			Expect(value).To(Equal(expectedValue))
		},
		Entry("plain option", "server_port", "8080", true),
		Entry("mixed-case option", "server_name", "Mixed Case", true),
		Entry("empty option is absent", "server_banner", "", false),
		Entry("inline '#' is kept", "database_url", "postgres://db:5432/app # not a comment", true),
		Entry("option missing from section falls back to DEFAULT", "server_retries", "3", true),
		Entry("top-level keys live in DEFAULT", "timeout", "notanumber", true),
		Entry("top-level key with separator is looked up by section", "log_level", "", false),
		Entry("missing section does not fall back", "cache_retries", "", false),
	)

	DescribeTable("malformed keys",
		func(key string) {
			_, found, err := src.Lookup(key)
			Expect(found).To(BeFalse())
			Expect(errors.Is(err, ErrMalformedKey)).To(BeTrue(), "unexpected error: %v", err)
			var mke *MalformedKeyError
			Expect(errors.As(err, &mke)).To(BeTrue())
			Expect(mke.Key).To(Equal(key))
		},
		Entry("empty key", ""),
		Entry("empty section", "_port"),
		Entry("empty field", "server_"),
	)

	It("should reject keys without a separator in strict mode", func() {
		strict, err := NewIniFileSource(testutils.TestDataFile("app.ini"), WithStrictKeys())
		Expect(err).NotTo(HaveOccurred())
		_, found, err := strict.Lookup("timeout")
		Expect(found).To(BeFalse())
		Expect(err).To(MatchError(ErrMalformedKey))

		value, found, err := strict.Lookup("server_port")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("8080"))
	})

	It("should return identical results for repeated lookups", func() {
		for i := 0; i < 3; i++ {
			value, found, err := src.Lookup("server_host")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(value).To(Equal("example.com"))
		}
	})
})

var _ = Describe("IniFileSource load failures", func() {
	It("should report a missing file as unavailable", func() {
		src, err := NewIniFileSource(testutils.TestDataFile("missing.ini"))
		Expect(src).To(BeNil())
		Expect(err).To(MatchError(ErrSourceUnavailable))
		Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
		var sue *SourceUnavailableError
		Expect(errors.As(err, &sue)).To(BeTrue())
		Expect(sue.Path).To(Equal(testutils.TestDataFile("missing.ini")))
	})

	It("should report an unparsable file as unavailable", func() {
		src, err := NewIniFileSource(testutils.TestDataFile("malformed.ini"))
		Expect(src).To(BeNil())
		Expect(err).To(MatchError(ErrSourceUnavailable))
	})
})
