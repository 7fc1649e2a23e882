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

package testutils

import (
	"os"
	"path"

	"github.com/onsi/ginkgo/v2"
	log "github.com/sirupsen/logrus"

	"github.com/projectcalico/confloader/pkg/logutils"
)

// HookLogrusForGinkgo routes logrus output to the GinkgoWriter, so that logs are only
// shown for failing specs, and turns on debug logging.  Call it from the init() of a
// suite file.
func HookLogrusForGinkgo() {
	log.SetOutput(ginkgo.GinkgoWriter)
	log.SetFormatter(&logutils.Formatter{Component: "test"})
	log.AddHook(&logutils.ContextHook{})
	log.SetLevel(log.DebugLevel)
}

// TestDataFile returns the path of the named file under the testdata directory of the
// current package.
func TestDataFile(name string) string {
	dir, _ := os.Getwd()

	return path.Join(dir, "testdata", name)
}
