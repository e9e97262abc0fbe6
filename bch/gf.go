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

import "sync"

const (
	// M is the degree of the Galois field GF(2^M).
	M = 13
	// T is the number of bit errors the code can correct.
	T = 4
	// N is the number of nonzero field elements, 2^M-1.
	N = 1<<M - 1
	// ECCBits is the number of parity bits protecting each block.
	ECCBits = M * T

	// primitivePoly generates GF(2^13).
	primitivePoly = 0x25AF
)

var (
	initOnce sync.Once
	// aPowTab[i] = a^i, aLogTab[a^i] = i. Read-only once Init has returned.
	aPowTab [N + 1]uint16
	aLogTab [N + 1]uint16
)

// Init builds the GF(2^13) exponent and logarithm tables.
// It is safe to call more than once; Decode calls it too.
func Init() {
	initOnce.Do(buildTables)
}

func buildTables() {
	x := 1
	for i := 0; i < N; i++ {
		aPowTab[i] = uint16(x)
		aLogTab[x] = uint16(i)
		x <<= 1
		if x&(1<<M) != 0 {
			x ^= primitivePoly
		}
	}
	aPowTab[N] = 1
	aLogTab[0] = 0
}

// modN reduces v into [0, N).
func modN(v int) int {
	v %= N
	if v < 0 {
		v += N
	}
	return v
}

func mul(a, b uint16) uint16 {
	if a == 0 || b == 0 {
		return 0
	}
	return aPowTab[modN(int(aLogTab[a])+int(aLogTab[b]))]
}

func sqr(a uint16) uint16 {
	if a == 0 {
		return 0
	}
	return aPowTab[modN(2*int(aLogTab[a]))]
}

// div returns a/b. b must be nonzero.
func div(a, b uint16) uint16 {
	if a == 0 {
		return 0
	}
	return aPowTab[modN(int(aLogTab[a])+N-int(aLogTab[b]))]
}

func aPow(i int) uint16 {
	return aPowTab[modN(i)]
}

// aLog is only meaningful for x != 0.
func aLog(x uint16) int {
	return int(aLogTab[x])
}
