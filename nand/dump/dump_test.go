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

package dump

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/nand-recovery/bch"
	"github.com/google/nand-recovery/nand"
)

func testPages(n, size int) []*nand.Page {
	var pages []*nand.Page
	for i := 0; i < n; i++ {
		d := bytes.Repeat([]byte{byte(i + 1)}, size)
		pages = append(pages, &nand.Page{
			Index:     i,
			Data:      d,
			Syndromes: bch.NewSyndromes(uint16(i), 0x1fff, uint16(0x100+i), 1),
		})
	}
	return pages
}

func TestRoundTrip(t *testing.T) {
	pages := testPages(4, 16)
	path := filepath.Join(t.TempDir(), "nand.bin")
	var buf bytes.Buffer
	if err := Write(&buf, pages); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if got, want := buf.Len(), 4*RecordSize(16); got != want {
		t.Fatalf("dump is %d bytes, want %d", got, want)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	d, err := Open(path, 16)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	defer d.Close()
	if diff := cmp.Diff(nand.Geometry{PageSize: 16, Pages: 4}, d.Geometry()); diff != "" {
		t.Errorf("Geometry() diff (-want +got):\n%s", diff)
	}
	for i := len(pages) - 1; i >= 0; i-- {
		got, err := d.ReadPage(context.Background(), i)
		if err != nil {
			t.Fatalf("ReadPage(%d) = %v", i, err)
		}
		if diff := cmp.Diff(pages[i], got); diff != "" {
			t.Errorf("ReadPage(%d) diff (-want +got):\n%s", i, diff)
		}
	}
}

func TestLayout(t *testing.T) {
	var buf bytes.Buffer
	p := &nand.Page{Data: []byte{0xaa, 0xbb}, Syndromes: bch.NewSyndromes(0x0102, 0x0304, 0x0506, 0x1fff)}
	if err := Write(&buf, []*nand.Page{p}); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	want := []byte{0xaa, 0xbb, 0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0xff, 0x1f}
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Errorf("record diff (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	if _, err := New(bytes.NewReader(make([]byte, 25)), 25, 16); err == nil {
		t.Error("New() with a partial record succeeded")
	}
	if _, err := New(bytes.NewReader(nil), 0, 0); err == nil {
		t.Error("New() with zero page size succeeded")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing"), 16); err == nil {
		t.Error("Open() of a missing file succeeded")
	}

	d, err := New(bytes.NewReader(make([]byte, 2*RecordSize(8))), int64(2*RecordSize(8)), 8)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	for _, i := range []int{-1, 2} {
		if _, err := d.ReadPage(context.Background(), i); err == nil {
			t.Errorf("ReadPage(%d) succeeded", i)
		}
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}

	mixed := []*nand.Page{{Data: make([]byte, 4)}, {Data: make([]byte, 5)}}
	if err := Write(&bytes.Buffer{}, mixed); err == nil {
		t.Error("Write() of mixed page sizes succeeded")
	}
}

func TestCorruptTrailer(t *testing.T) {
	const pageSize = 16
	rec := make([]byte, 2*RecordSize(pageSize))
	// Page 1 carries a trailer of all ones, outside the field.
	for i := RecordSize(pageSize) + pageSize; i < len(rec); i++ {
		rec[i] = 0xff
	}
	d, err := New(bytes.NewReader(rec), int64(len(rec)), pageSize)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	r, err := nand.NewReader(d, nand.ReaderOpts{PageSize: pageSize, BackOff: func() backoff.BackOff { return &backoff.ZeroBackOff{} }})
	if err != nil {
		t.Fatalf("NewReader() = %v", err)
	}
	if _, err := r.Read(context.Background(), 0); err != nil {
		t.Errorf("Read(0) = %v", err)
	}
	if _, err := r.Read(context.Background(), 1); !errors.Is(err, bch.ErrInvalidSyndrome) {
		t.Errorf("Read(1) = %v, want %v", err, bch.ErrInvalidSyndrome)
	}
}
