// Copyright 2026 Google LLC. All Rights Reserved.
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

// Package report defines storage for the per-page outcome of NAND scrubs.
package report

import "fmt"

// Status is the outcome of decoding a page.
type Status int

const (
	// Clean pages had no bit errors.
	Clean Status = iota
	// Corrected pages had bit errors the decoder fixed.
	Corrected
	// Uncorrectable pages could not be decoded in any of the reads.
	Uncorrectable
)

func (s Status) String() string {
	switch s {
	case Clean:
		return "clean"
	case Corrected:
		return "corrected"
	case Uncorrectable:
		return "uncorrectable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Entry is the report for one page of a scrub run.
type Entry struct {
	Page     int
	Status   Status
	BitFlips int
	Attempts int
}

// Summary totals the entries of a scrub run.
type Summary struct {
	Pages         int
	Clean         int
	Corrected     int
	Uncorrectable int
	BitFlips      int
}

// Store is a handle on persistent storage for scrub reports.
type Store interface {
	// Init sets up the storage. This should be idempotent, and will be
	// called once per process startup.
	Init() error

	// Record stores the entry for a page of the named run, replacing any
	// earlier entry for the same page.
	Record(run string, e Entry) error

	// Summary totals the entries recorded for run.
	Summary(run string) (Summary, error)

	// Uncorrectable returns the pages of run that could not be decoded, in
	// ascending order.
	Uncorrectable(run string) ([]int, error)
}
