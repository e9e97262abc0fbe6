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

// bch_server is an HTTP service which locates and corrects bit errors in
// NAND pages given the syndromes computed by the flash controller.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	ihttp "github.com/google/nand-recovery/cmd/bch_server/internal/http"
	"github.com/google/trillian/monitoring/prometheus"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

var (
	addr        = flag.String("listen", ":8080", "Address to listen on")
	metricsAddr = flag.String("metrics_listen", "localhost:8081", "Address to serve metrics on; if empty, metrics are served on --listen")
)

func main() {
	flag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// If any server dies, then all of them will be stopped via context cancellation.
	g, ctx := errgroup.WithContext(ctx)

	r := mux.NewRouter()
	ihttp.NewServer(prometheus.MetricFactory{}).RegisterHandlers(r)

	servers := map[string]*http.Server{*addr: {Handler: r}}
	if *metricsAddr == "" || *metricsAddr == *addr {
		r.Handle("/metrics", promhttp.Handler())
	} else {
		m := http.NewServeMux()
		m.Handle("/metrics", promhttp.Handler())
		servers[*metricsAddr] = &http.Server{Handler: m}
	}

	for a, srv := range servers {
		a, srv := a, srv
		l, err := net.Listen("tcp", a)
		if err != nil {
			glog.Exitf("failed to listen on %q: %v", a, err)
		}
		g.Go(func() error {
			glog.Infof("HTTP server listening on %s", l.Addr())
			defer glog.Infof("HTTP server on %s done", l.Addr())
			if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			// Brings down the HTTP server when ctx is done.
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
	}
	if err := g.Wait(); err != nil {
		glog.Errorf("failed with error: %v", err)
	}
}
