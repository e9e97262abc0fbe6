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

// logRep stores the monic, log based representation of d.elp in d.cache.
// The leading term is normalised to a^0.
func (d *decoder) logRep() {
	deg := d.elp.deg
	l := N - aLog(d.elp.c[deg])
	for i := 0; i < deg; i++ {
		if c := d.elp.c[i]; c != 0 {
			d.cache[i] = logTerm{exp: modN(aLog(c) + l), ok: true}
		} else {
			d.cache[i] = logTerm{}
		}
	}
	d.cache[deg] = logTerm{exp: 0, ok: true}
}

// chienSearch evaluates d.elp at every field element that maps onto one of
// the 8*length+ECCBits bits of the block and returns the raw root positions.
// Either all d.elp.deg roots are returned, or none.
func (d *decoder) chienSearch(length int) []int {
	deg := d.elp.deg
	k := 8*length + ECCBits
	d.logRep()
	syn0 := div(d.elp.c[0], d.elp.c[deg])

	roots := make([]int, 0, deg)
	for i := N - k + 1; i <= N; i++ {
		syn := syn0
		for j := 1; j <= deg; j++ {
			if t := d.cache[j]; t.ok {
				syn ^= aPow(t.exp + j*i)
			}
		}
		if syn == 0 {
			roots = append(roots, N-i)
			if len(roots) == deg {
				return roots
			}
		}
	}
	return nil
}
