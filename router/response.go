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
	"net/http"
)

// Response is the terminal value of a request: the normal return of the
// final handler, or the value an earlier stage short-circuited with.
//
// Resp may be a plain value, or a [Deferred] computed from the final props
// during normalization. Status defaults to 200 when Resp is present; Type
// overrides the content type derived from the shape of Resp.
type Response struct {
	Resp   any
	Status int
	Type   string
}

// Deferred is a response body computed from the final props at
// normalization time. It is invoked exactly once; its result is used as-is
// and never re-invoked, even if it is itself callable.
type Deferred func(ctx context.Context, props Props) (any, error)

// Handler produces a terminal response from the accumulated props.
type Handler func(ctx context.Context, props Props) (*Response, error)

// Value returns a Handler that always responds with v and status 200.
// It is the idiomatic way to register a static response body.
func Value(v any) Handler {
	return func(context.Context, Props) (*Response, error) {
		return &Response{Resp: v}, nil
	}
}

// normalize resolves a Deferred body and fills defaulted fields, returning
// a fresh Response. The input is not modified.
func (r *Response) normalize(ctx context.Context, props Props) (*Response, error) {
	out := &Response{Resp: r.Resp, Status: r.Status, Type: r.Type}
	switch fn := out.Resp.(type) {
	case Deferred:
		v, err := fn(ctx, props)
		if err != nil {
			return nil, err
		}
		out.Resp = v
	case func(ctx context.Context, props Props) (any, error):
		v, err := fn(ctx, props)
		if err != nil {
			return nil, err
		}
		out.Resp = v
	case func(props Props) any:
		out.Resp = fn(props)
	}
	if out.Status == 0 {
		out.Status = http.StatusOK
	}
	if out.Type == "" {
		out.Type = contentTypeFor(out.Resp)
	}
	return out, nil
}

// contentTypeFor derives the wire content type from the shape of the
// response body: structured values are JSON, everything else plain text.
func contentTypeFor(v any) string {
	switch v.(type) {
	case nil, string, []byte:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}
