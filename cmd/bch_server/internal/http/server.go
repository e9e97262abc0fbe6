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

// Package http contains private implementation details for the BCH decode server.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/nand-recovery/api"
	"github.com/google/nand-recovery/bch"
	"github.com/google/trillian/monitoring"
	"github.com/gorilla/mux"
)

// maxBody bounds request bodies.
const maxBody = 4 * bch.MaxLength

var (
	once        sync.Once
	reqsCounter monitoring.Counter   // ep => value
	rspsCounter monitoring.Counter   // ep, rc => value
	rspLatency  monitoring.Histogram // ep, rc => value
	bitErrors   monitoring.Counter   // value
)

func setupMetrics(mf monitoring.MetricFactory) {
	reqsCounter = mf.NewCounter("http_reqs", "Number of requests", "ep")
	rspsCounter = mf.NewCounter("http_rsps", "Number of responses", "ep", "rc")
	rspLatency = mf.NewHistogram("http_latency", "Latency of responses in seconds", "ep", "rc")
	bitErrors = mf.NewCounter("bit_errors", "Number of bit errors located")
}

// Server is the core handler implementation of the decode server.
type Server struct{}

// NewServer creates a new server which reports metrics to mf.
func NewServer(mf monitoring.MetricFactory) *Server {
	once.Do(func() { setupMetrics(mf) })
	return &Server{}
}

// decode handles requests to locate, and optionally correct, bit errors.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (int, error) {
	var req api.DecodeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return http.StatusBadRequest, fmt.Errorf("cannot parse request body: %v", err)
	}
	if req.Data != nil && len(req.Data) != req.Length {
		return http.StatusBadRequest, fmt.Errorf("got %d data bytes, want %d", len(req.Data), req.Length)
	}

	s1, s3, s5, s7 := req.Syndromes[0], req.Syndromes[1], req.Syndromes[2], req.Syndromes[3]
	syn := bch.NewSyndromes(s1, s3, s5, s7)
	errs, err := bch.Decode(req.Length, &syn)
	if err != nil {
		return httpForError(err), err
	}
	bitErrors.Add(float64(len(errs)))

	rsp := api.DecodeResponse{Errors: errs}
	if req.Data != nil {
		bch.Correct(req.Data, errs)
		rsp.Data = req.Data
	}
	body, err := json.Marshal(rsp)
	if err != nil {
		return http.StatusInternalServerError, fmt.Errorf("failed to convert response to JSON: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		glog.Errorf("w.Write(): %v", err)
	}
	return http.StatusOK, nil
}

type handlerFunc func(http.ResponseWriter, *http.Request) (int, error)

// instrument wraps h with the request metrics and error reporting common to
// all endpoints.
func instrument(ep string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqsCounter.Inc(ep)
		start := time.Now()
		status, err := h(w, r)
		rc := strconv.Itoa(status)
		rspsCounter.Inc(ep, rc)
		rspLatency.Observe(time.Since(start).Seconds(), ep, rc)
		if err != nil {
			glog.V(1).Infof("%s: status=%d: %v", ep, status, err)
			http.Error(w, err.Error(), status)
		}
	}
}

// RegisterHandlers registers HTTP handlers for decode endpoints.
func (s *Server) RegisterHandlers(r *mux.Router) {
	r.HandleFunc(api.HTTPDecode, instrument("decode", s.decode)).Methods("POST")
}

func httpForError(err error) int {
	switch {
	case errors.Is(err, bch.ErrInvalidLength), errors.Is(err, bch.ErrInvalidSyndrome):
		return http.StatusBadRequest
	case errors.Is(err, bch.ErrUncorrectable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
