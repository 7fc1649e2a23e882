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
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/projectcalico/confloader/pkg/source"
)

// Resolve computes the value of every field in the schema.
//
// An invalid schema is rejected up front with a nil *Resolved.  Otherwise, the
// returned *Resolved holds every field that resolved, and the error (if any) joins
// the per-field *ConversionError and *LookupError values for those that didn't.
func Resolve(schema *Schema) (*Resolved, error) {
	if schema == nil {
		return nil, &SchemaError{Reason: "schema is nil"}
	}
	if err := schema.Validate(); err != nil {
		log.WithError(err).Error("Invalid configuration schema")
		return nil, err
	}
	counterResolutions.Inc()
	log.WithFields(log.Fields{
		"numFields":  len(schema.Fields),
		"numSources": len(schema.Sources),
	}).Debug("Resolving configuration")

	resolved := newResolved(len(schema.Fields))
	var errs []error
	for _, field := range schema.Fields {
		if err := resolveField(field, schema.Sources, resolved); err != nil {
			errs = append(errs, err)
		}
	}
	return resolved, errors.Join(errs...)
}

func resolveField(field Field, sources []source.Source, resolved *Resolved) error {
	p, err := newParam(field.Name, field.Kind)
	if err != nil {
		// Unreachable after Validate.
		return &SchemaError{Field: field.Name, Reason: err.Error()}
	}
	logCxt := log.WithField("field", field.Name)

	for _, src := range sources {
		name := src.Name()
		raw, found, err := src.Lookup(field.Name)
		if err != nil {
			counterVecLookups.WithLabelValues(name, lookupError).Inc()
			counterVecFieldErrors.WithLabelValues(fieldErrorLookup).Inc()
			logCxt.WithError(err).WithField("source", name).Error("Failed to look up config value")
			return &LookupError{Field: field.Name, Source: name, Err: err}
		}
		if !found || raw == "" {
			counterVecLookups.WithLabelValues(name, lookupMiss).Inc()
			continue
		}
		counterVecLookups.WithLabelValues(name, lookupHit).Inc()

		value, err := p.Parse(raw)
		if err != nil {
			counterVecFieldErrors.WithLabelValues(fieldErrorConversion).Inc()
			logCxt.WithError(err).WithField("source", name).Error("Invalid config value")
			return &ConversionError{
				Field:  field.Name,
				Source: name,
				Raw:    raw,
				Kind:   field.Kind,
				Err:    err,
			}
		}
		logCxt.Infof("Parsed value for %v: %v (from %v)", field.Name, value, name)
		resolved.set(field.Name, value, name, raw)
		return nil
	}

	logCxt.Debugf("Defaulting: %v to %v", field.Name, field.Default)
	resolved.set(field.Name, field.Default, DefaultSourceName, "")
	return nil
}
