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

package bch

import "fmt"

// poly is a polynomial over GF(2^13) of degree at most T.
type poly struct {
	deg int
	c   [T + 1]uint16
}

func unitPoly() poly {
	return poly{deg: 0, c: [T + 1]uint16{1}}
}

// logTerm is a coefficient held as a discrete logarithm. ok is false for a
// zero coefficient, which has no logarithm.
type logTerm struct {
	exp int
	ok  bool
}

// decoder holds the scratch state of a single Decode call.
type decoder struct {
	elp   poly // candidate error locator polynomial
	pelp  poly // locator polynomial at the last degree change
	cache [T + 1]logTerm
}

// errorLocator runs the simplified binary Berlekamp-Massey algorithm over the
// full syndrome vector and leaves the error locator polynomial in d.elp.
// It returns the degree of that polynomial; a result greater than T means
// more than T errors occurred.
func (d *decoder) errorLocator(syn *Syndromes) int {
	d.elp = unitPoly()
	d.pelp = unitPoly()
	pd := uint16(1)
	pp := -1
	disc := syn[0]

	for i := 0; i < T && d.elp.deg <= T; i++ {
		if disc != 0 {
			k := 2*i - pp
			// The degree never decreases, so once it would pass T the
			// remaining rounds cannot bring it back.
			if d.pelp.deg+k > T {
				return d.pelp.deg + k
			}
			snapshot := d.elp
			// elp(X) += disc * pd^-1 * X^k * pelp(X)
			tmp := aLog(disc) + N - aLog(pd)
			for j := 0; j <= d.pelp.deg; j++ {
				if c := d.pelp.c[j]; c != 0 {
					d.elp.c[j+k] ^= aPow(tmp + aLog(c))
				}
			}
			// Strictly greater: on a tie the previous polynomial is kept.
			if deg := d.pelp.deg + k; deg > d.elp.deg {
				d.elp.deg = deg
				d.pelp = snapshot
				pd = disc
				pp = 2 * i
			}
		}
		if i < T-1 {
			n := 2*i + 2
			if d.elp.deg > n {
				panic(fmt.Sprintf("bch: locator degree %d exceeds round bound %d", d.elp.deg, n))
			}
			disc = syn[n]
			for j := 1; j <= d.elp.deg; j++ {
				disc ^= mul(d.elp.c[j], syn[n-j])
			}
		}
	}
	return d.elp.deg
}
