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


// The config package resolves declared, typed configuration fields from an ordered
// list of sources.
//
// # Usage
//
// Declare the fields and the sources to consult, in priority order:
//
//	ini, err := source.NewIniFileSource("/etc/myapp/myapp.cfg")
//	if err != nil {
//		// The file is missing or unreadable.
//	}
//	schema := config.NewSchema(source.NewEnvironmentSource(), ini).Declare(
//		config.StringField("path", ""),
//		config.IntField("server_port", 8080),
//		config.DurationField("server_timeout", 30*time.Second),
//	)
//
// Then resolve it, once:
//
//	resolved, err := config.Resolve(schema)
//	port := resolved.Int("server_port")
//
// Alternatively, Populate derives the fields from `config:"<name>;<default>"` struct
// tags and writes the resolved values into the struct.  LoaderSettings builds the
// usual environment, INI file, .env file chain from environment variables.
//
// # Resolution
//
// For each field, the sources are asked in the order they were given.  The first
// source that returns a non-empty value supplies the field; its raw string is parsed
// according to the field's kind.  If no source has a value, the declared default is
// used.  A value that fails to parse is reported as a *ConversionError: the default
// is not substituted.  Errors are per-field; other fields still resolve.
package config
