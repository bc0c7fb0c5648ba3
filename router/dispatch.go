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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Request is the transport-independent request shape consumed by the core.
// [Router.ServeHTTP] adapts net/http requests onto it; tests and embedders
// may construct it directly and call [Router.Dispatch].
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   any
}

// notFoundPattern is the pattern label recorded for unmatched requests.
const notFoundPattern = "_not_found"

// Dispatch resolves req to a definition, builds the initial props bag,
// runs the route's pipeline, and normalizes the result into a wire
// response. It never returns nil: pipeline errors surface as a 500
// response and unmatched requests as the configured not-found response.
func (r *Router) Dispatch(ctx context.Context, req Request) *Response {
	start := time.Now()

	rt, params, mp, ok := r.resolve(req.Method, req.Path)
	if !ok {
		resp := r.notFoundResponse()
		r.observe(req.Method, notFoundPattern, resp.Status, start)
		return resp
	}

	props := initialProps(req, rt, params, mp)
	resp, err := rt.composed(ctx, props)
	if err == nil {
		resp, err = resp.normalize(ctx, props)
	}
	if err != nil {
		r.logger.Error("request pipeline failed",
			"method", req.Method,
			"path", req.Path,
			"pattern", rt.path,
			"error", err,
		)
		resp = &Response{
			Resp:   "internal server error",
			Status: http.StatusInternalServerError,
			Type:   contentTypeFor(""),
		}
	}
	r.observe(req.Method, rt.path, resp.Status, start)
	return resp
}

func (r *Router) observe(method, pattern string, status int, start time.Time) {
	if r.recorder != nil {
		r.recorder.ObserveRequest(method, pattern, status, time.Since(start))
	}
}

// initialProps builds the props bag the pipeline starts from: request
// identity, parsed body for mutating methods, bound params, query, the
// matched-path descriptor, the literal pattern, and the definition's
// extras (reserved keys excluded).
func initialProps(req Request, rt *Route, params map[string]string, mp MatchedPath) Props {
	props := Props{
		KeyMethod:      req.Method,
		KeyPath:        req.Path,
		KeyMatchedPath: mp,
		KeyPathPattern: rt.path,
	}
	for k, v := range rt.extras {
		if _, reserved := reservedKeys[k]; !reserved {
			props[k] = v
		}
	}
	if params != nil {
		props[KeyParams] = params
	}
	if req.Query != nil {
		props[KeyQuery] = req.Query
	}
	if req.Body != nil && hasBody(req.Method) {
		props[KeyBody] = req.Body
	}
	return props
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// ServeHTTP implements http.Handler. It adapts the HTTP request into the
// core [Request] shape, dispatches it, and serializes the response: JSON
// for structured bodies, plain text otherwise.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	creq := Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  flattenQuery(req.URL.Query()),
	}
	if hasBody(req.Method) {
		creq.Body = parseBody(req.Body)
	}

	resp := r.Dispatch(req.Context(), creq)
	writeResponse(w, resp)
}

// flattenQuery keeps the first value of each query parameter, matching the
// flat query mapping the core consumes.
func flattenQuery(values url.Values) map[string]string {
	if len(values) == 0 {
		return nil
	}
	q := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			q[k] = vs[0]
		}
	}
	return q
}

// parseBody decodes the request body as JSON, falling back to plain-text
// passthrough when the payload is not valid JSON. An empty body yields nil.
func parseBody(rc io.Reader) any {
	raw, err := io.ReadAll(rc)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", resp.Type)
	w.WriteHeader(resp.Status)
	switch v := resp.Resp.(type) {
	case nil:
	case string:
		_, _ = io.WriteString(w, v)
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}
