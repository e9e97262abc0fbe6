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

// Package api provides the API endpoints for the BCH decode server.
package api

const (
	// HTTPDecode is the path of the URL to decode a codeword. It takes POST
	// requests with a JSON encoded DecodeRequest body and responds with a
	// JSON encoded DecodeResponse.
	HTTPDecode = "/bch/v0/decode"
)

// DecodeRequest asks the server to locate the bit errors of one codeword.
type DecodeRequest struct {
	// Length is the number of data bytes the codeword protects.
	Length int `json:"length"`
	// Syndromes are the hardware computed S1, S3, S5 and S7.
	Syndromes [4]uint16 `json:"syndromes"`
	// Data is optional. If present it must be Length bytes long, and the
	// corrected data is returned in the response.
	Data []byte `json:"data,omitempty"`
}

// DecodeResponse is the result of a successful decode.
type DecodeResponse struct {
	// Errors holds the bit positions found, in the order the decoder found
	// them. Positions at or beyond 8*Length are in the ECC bytes.
	Errors []int `json:"errors"`
	// Data is the corrected data, if the request carried any.
	Data []byte `json:"data,omitempty"`
}
