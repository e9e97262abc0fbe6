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

// Package bch decodes the 4-bit correcting binary BCH code used by the NAND
// controller's hardware ECC engine.
//
// The controller computes the odd syndromes S1, S3, S5 and S7 of each
// codeword over GF(2^13) (primitive polynomial 0x25AF). Decode turns them into
// the bit positions that need flipping. This package never encodes and never
// looks at the page data itself; Correct is a convenience for applying the
// positions Decode returns.
package bch

import (
	"errors"
	"fmt"
)

// MaxLength is the largest data length, in bytes, a single codeword can
// protect.
const MaxLength = (N - ECCBits) / 8

var (
	// ErrUncorrectable is returned when the syndromes are not consistent with
	// T or fewer bit errors in the block.
	ErrUncorrectable = errors.New("bch: uncorrectable codeword")
	// ErrInvalidLength is returned when the data length cannot be covered by
	// a single codeword.
	ErrInvalidLength = errors.New("bch: invalid data length")
	// ErrInvalidSyndrome is returned when a hardware syndrome is not an
	// element of GF(2^M). It wraps ErrUncorrectable, as a re-read may still
	// produce a usable codeword.
	ErrInvalidSyndrome = fmt.Errorf("%w: syndrome outside the field", ErrUncorrectable)
)

// Syndromes holds S1..S8 in slots 0..7. Only S1, S3, S5 and S7 are supplied by
// the hardware; Decode fills in the even syndromes.
type Syndromes [2 * T]uint16

// NewSyndromes returns a syndrome vector for the hardware computed odd
// syndromes.
func NewSyndromes(s1, s3, s5, s7 uint16) Syndromes {
	return Syndromes{0: s1, 2: s3, 4: s5, 6: s7}
}

// Zero returns true if the hardware syndromes indicate an error-free codeword.
func (s Syndromes) Zero() bool {
	return s[0]|s[2]|s[4]|s[6] == 0
}

// Odd returns S1, S3, S5 and S7.
func (s Syndromes) Odd() [T]uint16 {
	return [T]uint16{s[0], s[2], s[4], s[6]}
}

// Decode finds the bit errors in a codeword protecting length bytes of data.
//
// On success the returned slice holds between 0 and T bit positions in
// discovery order. A position p < 8*length addresses data bit p%8 of byte
// p/8; higher positions fall within the ECC bytes and need no correction.
// syn is updated in place with the derived even syndromes.
//
// A length outside [1, MaxLength] returns ErrInvalidLength even when the
// syndromes are all zero. A syndrome above N returns ErrInvalidSyndrome.
//
// Decode is safe for concurrent use as long as each call has its own syn.
func Decode(length int, syn *Syndromes) ([]int, error) {
	if length < 1 || length > MaxLength {
		return nil, fmt.Errorf("%w: %d bytes (want 1..%d)", ErrInvalidLength, length, MaxLength)
	}
	for i, s := range syn.Odd() {
		if s > N {
			return nil, fmt.Errorf("%w: S%d = %#x", ErrInvalidSyndrome, 2*i+1, s)
		}
	}
	Init()

	// v(a^(2j)) = v(a^j)^2
	for i := 0; i < T; i++ {
		syn[2*i+1] = sqr(syn[i])
	}

	var d decoder
	deg := d.errorLocator(syn)
	if deg > T {
		return nil, ErrUncorrectable
	}
	if deg == 0 {
		return []int{}, nil
	}
	roots := d.chienSearch(length)
	if len(roots) != deg {
		return nil, ErrUncorrectable
	}

	nbits := 8*length + ECCBits
	for i, r := range roots {
		// chienSearch only scans roots below nbits.
		if r >= nbits {
			return nil, ErrUncorrectable
		}
		p := nbits - 1 - r
		roots[i] = (p &^ 7) | (7 - (p & 7))
	}
	return roots, nil
}

// Correct flips the data bits named in errloc and returns how many of them
// were inside data. Positions beyond data address ECC bits and are skipped.
func Correct(data []byte, errloc []int) int {
	n := 0
	for _, p := range errloc {
		if p < 0 || p >= 8*len(data) {
			continue
		}
		data[p/8] ^= 1 << uint(p%8)
		n++
	}
	return n
}
