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
	"github.com/prometheus/client_golang/prometheus"
)

var (
	counterVecLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confloader_lookups_total",
		Help: "Number of source lookups, by source and result (hit, miss or error).",
	}, []string{"source", "result"})
	counterVecFieldErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confloader_field_errors_total",
		Help: "Number of fields that failed to resolve, by kind of failure.",
	}, []string{"kind"})
	counterResolutions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confloader_resolutions_total",
		Help: "Number of schema resolutions.",
	})
)

func init() {
	prometheus.MustRegister(
		counterVecLookups,
		counterVecFieldErrors,
		counterResolutions,
	)
}

const (
	lookupHit   = "hit"
	lookupMiss  = "miss"
	lookupError = "error"

	fieldErrorConversion = "conversion"
	fieldErrorLookup     = "lookup"
)
