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

// Package dump reads and writes raw NAND dumps.
//
// A dump is a sequence of fixed size records, one per page: the page data
// followed by the hardware syndromes S1, S3, S5 and S7 as little endian
// 16 bit values.
package dump

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/google/nand-recovery/bch"
	"github.com/google/nand-recovery/nand"
)

// SyndromeBytes is the size of the syndrome trailer of each record.
const SyndromeBytes = 2 * bch.T

// RecordSize returns the size of one page record.
func RecordSize(pageSize int) int {
	return pageSize + SyndromeBytes
}

// File is a dump on disk. It is safe for concurrent use.
type File struct {
	r   io.ReaderAt
	c   io.Closer
	geo nand.Geometry
}

var _ nand.PageSource = &File{}

// Open opens the dump at path.
func Open(path string, pageSize int) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	d, err := New(f, fi.Size(), pageSize)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.c = f
	return d, nil
}

// New returns a dump reading size bytes from r.
func New(r io.ReaderAt, size int64, pageSize int) (*File, error) {
	rs := int64(RecordSize(pageSize))
	if size%rs != 0 {
		return nil, fmt.Errorf("size %d is not a multiple of the %d byte record size", size, rs)
	}
	geo := nand.Geometry{PageSize: pageSize, Pages: int(size / rs)}
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return &File{r: r, geo: geo}, nil
}

// Geometry returns the layout of the dump.
func (d *File) Geometry() nand.Geometry {
	return d.geo
}

// ReadPage implements nand.PageSource.
func (d *File) ReadPage(_ context.Context, index int) (*nand.Page, error) {
	if index < 0 || index >= d.geo.Pages {
		return nil, fmt.Errorf("page %d out of range [0, %d)", index, d.geo.Pages)
	}
	rec := make([]byte, RecordSize(d.geo.PageSize))
	if _, err := d.r.ReadAt(rec, int64(index)*int64(len(rec))); err != nil {
		return nil, fmt.Errorf("read page %d: %w", index, err)
	}
	s := rec[d.geo.PageSize:]
	le := binary.LittleEndian
	return &nand.Page{
		Index: index,
		Data:  rec[:d.geo.PageSize:d.geo.PageSize],
		Syndromes: bch.NewSyndromes(
			le.Uint16(s[0:]),
			le.Uint16(s[2:]),
			le.Uint16(s[4:]),
			le.Uint16(s[6:]),
		),
	}, nil
}

// Close closes the underlying file, if any.
func (d *File) Close() error {
	if d.c == nil {
		return nil
	}
	return d.c.Close()
}

// Write writes pages to w in dump format. All pages must be the same size.
func Write(w io.Writer, pages []*nand.Page) error {
	if len(pages) == 0 {
		return nil
	}
	size := len(pages[0].Data)
	var trailer [SyndromeBytes]byte
	for i, p := range pages {
		if len(p.Data) != size {
			return fmt.Errorf("page %d has %d bytes, want %d", i, len(p.Data), size)
		}
		if _, err := w.Write(p.Data); err != nil {
			return err
		}
		odd := p.Syndromes.Odd()
		for j, s := range odd {
			binary.LittleEndian.PutUint16(trailer[2*j:], s)
		}
		if _, err := w.Write(trailer[:]); err != nil {
			return err
		}
	}
	return nil
}
