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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// noopLogger is the logger used when none is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Router matches HTTP requests to registered routes and runs their
// middleware pipelines.
//
// Two resolution strategies coexist. Pattern routes are kept in per-method
// ordered lists and resolved first-match-wins in registration order;
// registration order is therefore significant and preserved. Responder
// mounts are matched second, by plain string prefix, for any HTTP method.
//
// Routes are registered during a single-threaded configuration phase;
// serving is safe for concurrent use.
//
// Example:
//
//	r := router.MustNew()
//	r.GET("/laptops/:id", getLaptop)
//	r.Mount("/api", engine.Handler())
//	http.ListenAndServe(":8080", r)
type Router struct {
	mu       sync.RWMutex
	routes   map[string][]*Route // per-method ordered pattern routes
	mounts   []*Route            // prefix responder mounts, any method
	notFound any                 // body of the not-found response

	logger   *slog.Logger
	recorder Recorder

	enableH2C      bool
	serverTimeouts *serverTimeouts
}

// Option defines functional options for router configuration.
type Option func(*Router)

// WithLogger sets the structured logger used for dispatch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the observability recorder notified once per
// dispatched request.
func WithRecorder(rec Recorder) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}

// WithH2C enables HTTP/2 cleartext support for [Router.Serve].
// Only use in development or behind a trusted load balancer.
func WithH2C(enable bool) Option {
	return func(r *Router) {
		r.enableH2C = enable
	}
}

// WithServerTimeouts configures the timeouts of servers built by
// [Router.NewServer] and [Router.Serve].
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(r *Router) {
		r.serverTimeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// New creates a router. Configuration is validated immediately so that
// invalid setups fail at startup rather than at request time.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		routes: make(map[string][]*Route),
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration: %w", err)
	}
	return r, nil
}

// MustNew is like [New] but panics if the configuration is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}
	return r
}

func (r *Router) validate() error {
	if t := r.serverTimeouts; t != nil {
		for _, d := range []time.Duration{t.readHeader, t.read, t.write, t.idle} {
			if d <= 0 {
				return fmt.Errorf("%w: got %v", ErrServerTimeoutInvalid, d)
			}
		}
	}
	return nil
}

// Handle registers a pattern route. The pattern is compiled eagerly;
// a malformed pattern fails the registration with [ErrInvalidPattern].
//
// Registrations are appended without de-duplication: an identical later
// pattern is reachable only if no earlier one matches first.
func (r *Router) Handle(method, pattern string, h Handler, opts ...RouteOption) error {
	if h == nil {
		return fmt.Errorf("%w: %s %s", ErrNilHandler, method, pattern)
	}
	compiled, err := Compile(pattern)
	if err != nil {
		return err
	}
	rt := &Route{
		method:  method,
		path:    pattern,
		pattern: compiled,
		kind:    mountPattern,
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.composed = Compose(append(append([]Stage{}, rt.stages...), Final(h))...)

	r.mu.Lock()
	r.routes[method] = append(r.routes[method], rt)
	r.mu.Unlock()
	return nil
}

// GET registers a GET route, panicking on a malformed pattern.
func (r *Router) GET(pattern string, h Handler, opts ...RouteOption) {
	r.mustHandle(http.MethodGet, pattern, h, opts...)
}

// POST registers a POST route, panicking on a malformed pattern.
func (r *Router) POST(pattern string, h Handler, opts ...RouteOption) {
	r.mustHandle(http.MethodPost, pattern, h, opts...)
}

// PUT registers a PUT route, panicking on a malformed pattern.
func (r *Router) PUT(pattern string, h Handler, opts ...RouteOption) {
	r.mustHandle(http.MethodPut, pattern, h, opts...)
}

// PATCH registers a PATCH route, panicking on a malformed pattern.
func (r *Router) PATCH(pattern string, h Handler, opts ...RouteOption) {
	r.mustHandle(http.MethodPatch, pattern, h, opts...)
}

// DELETE registers a DELETE route, panicking on a malformed pattern.
func (r *Router) DELETE(pattern string, h Handler, opts ...RouteOption) {
	r.mustHandle(http.MethodDelete, pattern, h, opts...)
}

func (r *Router) mustHandle(method, pattern string, h Handler, opts ...RouteOption) {
	if err := r.Handle(method, pattern, h, opts...); err != nil {
		panic(fmt.Sprintf("router: register %s %s: %v", method, pattern, err))
	}
}

// Mount registers a responder: a handler matched by plain string prefix
// for any HTTP method. No parameter binding occurs; the matched-path
// descriptor passed to the handler carries the mount prefix so the
// responder can address the path remainder itself.
//
// Example:
//
//	r.Mount("/api", engine.Handler())
func (r *Router) Mount(prefix string, h Handler, opts ...RouteOption) {
	if h == nil {
		panic(fmt.Sprintf("router: mount %s: %v", prefix, ErrNilHandler))
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || prefix[0] != '/' {
		prefix = "/" + prefix
	}
	rt := &Route{
		path: prefix,
		kind: mountPrefix,
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.composed = Compose(append(append([]Stage{}, rt.stages...), Final(h))...)

	r.mu.Lock()
	r.mounts = append(r.mounts, rt)
	r.mu.Unlock()
}

// NotFound overrides the body of the response for unmatched requests.
// The status remains 404.
func (r *Router) NotFound(body any) {
	r.mu.Lock()
	r.notFound = body
	r.mu.Unlock()
}

// resolve selects the definition for a request.
//
// Pattern routes are tried first, in registration order for the method;
// responder mounts second, in registration order, ignoring the method.
// This order lets specific routes shadow a broad responder prefix and is
// part of the routing contract.
func (r *Router) resolve(method, path string) (*Route, map[string]string, MatchedPath, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, rt := range r.routes[method] {
		if res := rt.pattern.Match(path); res.Matched {
			return rt, res.Params, MatchedPath{Path: rt.path, Index: i}, true
		}
	}
	for i, rt := range r.mounts {
		if strings.HasPrefix(path, rt.path) {
			return rt, nil, MatchedPath{Path: rt.path, Index: i}, true
		}
	}
	return nil, nil, MatchedPath{}, false
}

// notFoundResponse builds the configured not-found response.
func (r *Router) notFoundResponse() *Response {
	r.mu.RLock()
	body := r.notFound
	r.mu.RUnlock()
	if body == nil {
		body = "not found"
	}
	return &Response{Resp: body, Status: http.StatusNotFound, Type: contentTypeFor(body)}
}
