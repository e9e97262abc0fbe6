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

// Package testonly synthesises hardware syndromes for known error patterns.
package testonly

import "github.com/google/nand-recovery/bch"

var aPow = func() [bch.N]uint16 {
	var t [bch.N]uint16
	x := 1
	for i := range t {
		t[i] = uint16(x)
		x <<= 1
		if x&(1<<bch.M) != 0 {
			x ^= 0x25AF
		}
	}
	return t
}()

func pow(e int) uint16 {
	e %= bch.N
	if e < 0 {
		e += bch.N
	}
	return aPow[e]
}

// SyndromesForRoots returns the odd syndromes the hardware would report for a
// codeword with a bit error at each of the given raw root positions.
// Raw root r is the coefficient of x^r in the received polynomial.
func SyndromesForRoots(roots ...int) bch.Syndromes {
	var s bch.Syndromes
	for _, r := range roots {
		for j := 1; j < 2*bch.T; j += 2 {
			s[j-1] ^= pow(r * j)
		}
	}
	return s
}

// RootForPosition returns the raw root that Decode reports as bit position pos
// of a block protecting length bytes.
func RootForPosition(length, pos int) int {
	p := (pos &^ 7) | (7 - (pos & 7))
	return 8*length + bch.ECCBits - 1 - p
}

// PositionForRoot is the inverse of RootForPosition.
func PositionForRoot(length, root int) int {
	p := 8*length + bch.ECCBits - 1 - root
	return (p &^ 7) | (7 - (p & 7))
}

// SyndromesForPositions returns the odd syndromes for bit errors at the given
// caller-visible positions of a block protecting length bytes.
func SyndromesForPositions(length int, pos ...int) bch.Syndromes {
	roots := make([]int, len(pos))
	for i, p := range pos {
		roots[i] = RootForPosition(length, p)
	}
	return SyndromesForRoots(roots...)
}
