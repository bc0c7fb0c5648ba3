// Copyright 2026 The Plank Authors
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

package router

import (
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// defaultServerTimeouts returns the timeouts applied when none are
// configured. They guard against slowloris-style resource exhaustion.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// NewServer builds an *http.Server for the router with the configured
// timeouts, wrapping the handler for HTTP/2 cleartext when enabled via
// [WithH2C]. Callers that need graceful shutdown use this and drive the
// server themselves.
func (r *Router) NewServer(addr string) *http.Server {
	t := r.serverTimeouts
	if t == nil {
		t = defaultServerTimeouts()
	}
	var handler http.Handler = r
	if r.enableH2C {
		handler = h2c.NewHandler(r, &http2.Server{})
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: t.readHeader,
		ReadTimeout:       t.read,
		WriteTimeout:      t.write,
		IdleTimeout:       t.idle,
	}
}

// Serve listens on addr and serves the router until the listener fails.
func (r *Router) Serve(addr string) error {
	return r.NewServer(addr).ListenAndServe()
}
