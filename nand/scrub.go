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
	"sync"

	"github.com/google/nand-recovery/bch"
	"golang.org/x/sync/errgroup"
)

// ScrubFunc is told about every page a scrub reads. err is nil or wraps
// bch.ErrUncorrectable. Returning an error stops the scrub.
type ScrubFunc func(index int, res *Result, err error) error

// Scrub reads pages [0, pages) through r using up to workers concurrent reads
// and reports each of them to fn. Calls to fn are serialised, in no
// particular page order.
//
// Uncorrectable pages are reported and the scrub carries on; any other read
// error stops the scrub and is returned.
func Scrub(ctx context.Context, r *Reader, pages, workers int, fn ScrubFunc) error {
	if workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	for i := 0; i < pages; i++ {
		if ctx.Err() != nil {
			break
		}
		index := i
		g.Go(func() error {
			res, err := r.Read(ctx, index)
			if err != nil && !errors.Is(err, bch.ErrUncorrectable) {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return fn(index, res, err)
		})
	}
	return g.Wait()
}
