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

// Package nand reads ECC protected NAND pages, corrects them with the BCH
// decoder and re-reads pages the decoder gives up on.
package nand

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/nand-recovery/bch"
)

// ErrTransient may be wrapped by a PageSource to mark a read failure as worth
// retrying.
var ErrTransient = errors.New("nand: transient read failure")

// Geometry describes the layout of a NAND image.
type Geometry struct {
	// PageSize is the number of data bytes covered by one set of hardware
	// syndromes.
	PageSize int
	// Pages is the number of pages in the image.
	Pages int
}

// Validate checks that pages of this geometry can be decoded.
func (g Geometry) Validate() error {
	if g.PageSize < 1 || g.PageSize > bch.MaxLength {
		return fmt.Errorf("page size %d out of range [1, %d]", g.PageSize, bch.MaxLength)
	}
	if g.Pages < 0 {
		return fmt.Errorf("negative page count %d", g.Pages)
	}
	return nil
}

// Page is a page as read from flash, before correction.
type Page struct {
	Index     int
	Data      []byte
	Syndromes bch.Syndromes
}

// PageSource provides raw pages together with their hardware syndromes.
type PageSource interface {
	// ReadPage reads the page at index. Each call returns a fresh read of
	// the flash, which may differ from earlier reads.
	ReadPage(ctx context.Context, index int) (*Page, error)
}

// Result describes a page after decoding.
type Result struct {
	// Page holds the page from the last read; Data is corrected in place
	// when decoding succeeded.
	Page *Page
	// Errors holds the bit positions reported by the decoder.
	Errors []int
	// DataFlips counts the corrected bits that were within Data.
	DataFlips int
	// Attempts is the number of reads it took.
	Attempts int
}
