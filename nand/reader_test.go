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

//go:generate mockgen -write_package_comment=false -self_package github.com/google/nand-recovery/nand_test -package nand_test -destination mock_nand_test.go github.com/google/nand-recovery/nand PageSource

package nand_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/cenkalti/backoff/v4"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/nand-recovery/bch"
	"github.com/google/nand-recovery/bch/testonly"
	"github.com/google/nand-recovery/nand"
)

const pageSize = 512

func zeroBackOff() backoff.BackOff { return &backoff.ZeroBackOff{} }

// pageData returns deterministic contents for page index.
func pageData(index int) []byte {
	d := make([]byte, pageSize)
	rand.New(rand.NewSource(int64(index))).Read(d)
	return d
}

// readOf returns a function producing a fresh read of page index with the
// given data bits flipped.
func readOf(index int, flips ...int) func(context.Context, int) (*nand.Page, error) {
	return func(context.Context, int) (*nand.Page, error) {
		d := pageData(index)
		for _, p := range flips {
			if p < 8*pageSize {
				d[p/8] ^= 1 << uint(p%8)
			}
		}
		return &nand.Page{
			Index:     index,
			Data:      d,
			Syndromes: testonly.SyndromesForPositions(pageSize, flips...),
		}, nil
	}
}

var tooManyFlips = []int{1, 200, 1999, 3000, 4000}

// corruptRead returns a read of page index whose syndrome trailer holds
// values outside the field.
func corruptRead(index int) func(context.Context, int) (*nand.Page, error) {
	return func(context.Context, int) (*nand.Page, error) {
		return &nand.Page{
			Index:     index,
			Data:      pageData(index),
			Syndromes: bch.NewSyndromes(0xffff, 0xffff, 0xffff, 0xffff),
		}, nil
	}
}

func init() {
	syn := testonly.SyndromesForPositions(pageSize, tooManyFlips...)
	if _, err := bch.Decode(pageSize, &syn); !errors.Is(err, bch.ErrUncorrectable) {
		panic("tooManyFlips is correctable")
	}
}

func TestReadCorrects(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockPageSource(ctrl)
	src.EXPECT().ReadPage(gomock.Any(), 3).DoAndReturn(readOf(3, 10, 2000, 8*pageSize+9))

	r, err := nand.NewReader(src, nand.ReaderOpts{PageSize: pageSize, MaxRetries: 2, BackOff: zeroBackOff})
	if err != nil {
		t.Fatalf("NewReader() = %v", err)
	}
	res, err := r.Read(context.Background(), 3)
	if err != nil {
		t.Fatalf("Read() = %v", err)
	}
	if diff := cmp.Diff(pageData(3), res.Page.Data); diff != "" {
		t.Errorf("corrected data diff (-want +got):\n%s", diff)
	}
	if got, want := len(res.Errors), 3; got != want {
		t.Errorf("len(Errors) = %d, want %d", got, want)
	}
	if got, want := res.DataFlips, 2; got != want {
		t.Errorf("DataFlips = %d, want %d", got, want)
	}
	if got, want := res.Attempts, 1; got != want {
		t.Errorf("Attempts = %d, want %d", got, want)
	}
}

func TestReadRetries(t *testing.T) {
	for _, test := range []struct {
		desc         string
		reads        []func(context.Context, int) (*nand.Page, error)
		maxRetries   int
		wantErr      error
		wantAttempts int
		wantFlips    int
	}{
		{
			desc:         "clean",
			reads:        []func(context.Context, int) (*nand.Page, error){readOf(1)},
			maxRetries:   3,
			wantAttempts: 1,
		},
		{
			desc:         "re-read recovers",
			reads:        []func(context.Context, int) (*nand.Page, error){readOf(1, tooManyFlips...), readOf(1, 77)},
			maxRetries:   3,
			wantAttempts: 2,
			wantFlips:    1,
		},
		{
			desc: "gives up",
			reads: []func(context.Context, int) (*nand.Page, error){
				readOf(1, tooManyFlips...),
				readOf(1, tooManyFlips...),
				readOf(1, tooManyFlips...),
			},
			maxRetries:   2,
			wantErr:      bch.ErrUncorrectable,
			wantAttempts: 3,
		},
		{
			desc: "no retries",
			reads: []func(context.Context, int) (*nand.Page, error){
				readOf(1, tooManyFlips...),
			},
			maxRetries:   0,
			wantErr:      bch.ErrUncorrectable,
			wantAttempts: 1,
		},
		{
			desc: "corrupt syndromes",
			reads: []func(context.Context, int) (*nand.Page, error){
				corruptRead(1),
				corruptRead(1),
			},
			maxRetries:   1,
			wantErr:      bch.ErrInvalidSyndrome,
			wantAttempts: 2,
		},
		{
			desc:         "re-read replaces corrupt syndromes",
			reads:        []func(context.Context, int) (*nand.Page, error){corruptRead(1), readOf(1, 300)},
			maxRetries:   3,
			wantAttempts: 2,
			wantFlips:    1,
		},
		{
			desc: "transient source error",
			reads: []func(context.Context, int) (*nand.Page, error){
				func(context.Context, int) (*nand.Page, error) { return nil, nand.ErrTransient },
				readOf(1, 5),
			},
			maxRetries:   3,
			wantAttempts: 2,
			wantFlips:    1,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			src := NewMockPageSource(ctrl)
			var calls []*gomock.Call
			for _, read := range test.reads {
				calls = append(calls, src.EXPECT().ReadPage(gomock.Any(), 1).DoAndReturn(read))
			}
			gomock.InOrder(calls...)

			r, err := nand.NewReader(src, nand.ReaderOpts{PageSize: pageSize, MaxRetries: test.maxRetries, BackOff: zeroBackOff})
			if err != nil {
				t.Fatalf("NewReader() = %v", err)
			}
			res, err := r.Read(context.Background(), 1)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Read() err = %v, want %v", err, test.wantErr)
			}
			if got := res.Attempts; got != test.wantAttempts {
				t.Errorf("Attempts = %d, want %d", got, test.wantAttempts)
			}
			if err != nil {
				return
			}
			if got := res.DataFlips; got != test.wantFlips {
				t.Errorf("DataFlips = %d, want %d", got, test.wantFlips)
			}
			if diff := cmp.Diff(pageData(1), res.Page.Data); diff != "" {
				t.Errorf("corrected data diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadPermanentErrors(t *testing.T) {
	errBroken := errors.New("controller on fire")
	for _, test := range []struct {
		desc string
		read func(context.Context, int) (*nand.Page, error)
	}{
		{
			desc: "source error",
			read: func(context.Context, int) (*nand.Page, error) { return nil, errBroken },
		},
		{
			desc: "short page",
			read: func(context.Context, int) (*nand.Page, error) {
				return &nand.Page{Index: 2, Data: make([]byte, pageSize-1)}, nil
			},
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			src := NewMockPageSource(ctrl)
			src.EXPECT().ReadPage(gomock.Any(), 2).DoAndReturn(test.read).Times(1)

			r, err := nand.NewReader(src, nand.ReaderOpts{PageSize: pageSize, MaxRetries: 5, BackOff: zeroBackOff})
			if err != nil {
				t.Fatalf("NewReader() = %v", err)
			}
			res, err := r.Read(context.Background(), 2)
			if err == nil {
				t.Fatal("Read() succeeded, want error")
			}
			if errors.Is(err, bch.ErrUncorrectable) {
				t.Errorf("Read() = %v, want a non-ECC error", err)
			}
			if got := res.Attempts; got != 1 {
				t.Errorf("Attempts = %d, want 1", got)
			}
		})
	}
}

func TestNewReaderValidates(t *testing.T) {
	for _, opts := range []nand.ReaderOpts{
		{PageSize: 0},
		{PageSize: bch.MaxLength + 1},
		{PageSize: pageSize, MaxRetries: -1},
	} {
		if _, err := nand.NewReader(nil, opts); err == nil {
			t.Errorf("NewReader(%+v) succeeded, want error", opts)
		}
	}
}
