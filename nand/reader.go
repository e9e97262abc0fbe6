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

package nand

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/glog"
	"github.com/google/nand-recovery/bch"
)

// ReaderOpts configures a Reader.
type ReaderOpts struct {
	// PageSize is the ECC step size in bytes.
	PageSize int
	// MaxRetries bounds the number of re-reads after the first one.
	MaxRetries int
	// BackOff returns the policy used between re-reads. Defaults to an
	// exponential backoff.
	BackOff func() backoff.BackOff
}

// Reader reads pages from a PageSource and corrects them.
type Reader struct {
	src        PageSource
	pageSize   int
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// NewReader returns a Reader for src.
func NewReader(src PageSource, opts ReaderOpts) (*Reader, error) {
	if opts.PageSize < 1 || opts.PageSize > bch.MaxLength {
		return nil, fmt.Errorf("page size %d out of range [1, %d]", opts.PageSize, bch.MaxLength)
	}
	if opts.MaxRetries < 0 {
		return nil, fmt.Errorf("negative MaxRetries %d", opts.MaxRetries)
	}
	r := &Reader{
		src:        src,
		pageSize:   opts.PageSize,
		maxRetries: uint64(opts.MaxRetries),
		newBackOff: opts.BackOff,
	}
	if r.newBackOff == nil {
		r.newBackOff = func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 10 * time.Millisecond
			bo.MaxElapsedTime = 0
			return bo
		}
	}
	return r, nil
}

// Read reads and corrects the page at index.
//
// Pages the decoder cannot correct are read again until MaxRetries is used up,
// in which case the returned error wraps bch.ErrUncorrectable and the Result
// describes the last read. Source errors are returned straight away unless they
// wrap ErrTransient.
func (r *Reader) Read(ctx context.Context, index int) (*Result, error) {
	res := &Result{}
	op := func() error {
		res.Attempts++
		p, err := r.src.ReadPage(ctx, index)
		if err != nil {
			if errors.Is(err, ErrTransient) {
				return err
			}
			return backoff.Permanent(fmt.Errorf("ReadPage(%d): %w", index, err))
		}
		if len(p.Data) != r.pageSize {
			return backoff.Permanent(fmt.Errorf("page %d has %d bytes, want %d", index, len(p.Data), r.pageSize))
		}
		res.Page = p
		res.Errors, res.DataFlips = nil, 0
		if p.Syndromes.Zero() {
			return nil
		}

		syn := p.Syndromes
		errloc, err := bch.Decode(r.pageSize, &syn)
		if err != nil {
			if errors.Is(err, bch.ErrUncorrectable) {
				return err
			}
			return backoff.Permanent(err)
		}
		res.Errors = errloc
		res.DataFlips = bch.Correct(p.Data, errloc)
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	err := backoff.RetryNotify(op, bo, func(err error, d time.Duration) {
		glog.V(1).Infof("page %d: re-reading in %v after attempt %d: %v", index, d, res.Attempts, err)
	})
	if err != nil {
		return res, fmt.Errorf("page %d: %w", index, err)
	}
	if len(res.Errors) > 0 {
		glog.V(2).Infof("page %d: corrected %d bit(s) at %v", index, len(res.Errors), res.Errors)
	}
	return res, nil
}
