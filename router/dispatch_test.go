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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, r *Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP_PlainText(t *testing.T) {
	r := MustNew()
	r.GET("/ping", Value("pong"))

	rec := doRequest(t, r, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServeHTTP_JSON(t *testing.T) {
	r := MustNew()
	r.GET("/doc", Value(map[string]any{"a": 1}))

	rec := doRequest(t, r, http.MethodGet, "/doc", "")

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestServeHTTP_BodyParsedForMutatingMethods(t *testing.T) {
	r := MustNew()
	echo := func(ctx context.Context, props Props) (*Response, error) {
		return &Response{Resp: props.Body()}, nil
	}
	r.POST("/echo", echo)
	r.GET("/echo", echo)

	post := doRequest(t, r, http.MethodPost, "/echo", `{"id":900}`)
	var got map[string]any
	require.NoError(t, json.Unmarshal(post.Body.Bytes(), &got))
	assert.Equal(t, map[string]any{"id": float64(900)}, got)

	get := doRequest(t, r, http.MethodGet, "/echo", `{"id":900}`)
	assert.Empty(t, get.Body.String(), "GET bodies are not parsed into props")
}

func TestServeHTTP_NonJSONBodyPassedThroughAsText(t *testing.T) {
	r := MustNew()
	r.POST("/echo", func(ctx context.Context, props Props) (*Response, error) {
		return &Response{Resp: props.Body()}, nil
	})

	rec := doRequest(t, r, http.MethodPost, "/echo", "just some text")

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "just some text", rec.Body.String())
}

func TestServeHTTP_QueryFlattenedToFirstValues(t *testing.T) {
	r := MustNew()
	r.GET("/q", func(ctx context.Context, props Props) (*Response, error) {
		return &Response{Resp: props.Query()}, nil
	})

	rec := doRequest(t, r, http.MethodGet, "/q?brand=lenovo&brand=acer&sort=id", "")

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]string{"brand": "lenovo", "sort": "id"}, got)
}

func TestServeHTTP_StageErrorMapsTo500(t *testing.T) {
	r := MustNew()
	r.GET("/broken", func(ctx context.Context, props Props) (*Response, error) {
		return nil, errors.New("database exploded")
	})

	rec := doRequest(t, r, http.MethodGet, "/broken", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", rec.Body.String())
}

func TestServeHTTP_DeferredRespResolvedWithProps(t *testing.T) {
	r := MustNew()
	r.GET("/greet/:name", func(ctx context.Context, props Props) (*Response, error) {
		return &Response{Resp: Deferred(func(ctx context.Context, props Props) (any, error) {
			return "hello " + props.Params()["name"], nil
		})}, nil
	})

	rec := doRequest(t, r, http.MethodGet, "/greet/ada", "")

	assert.Equal(t, "hello ada", rec.Body.String())
}

func TestServeHTTP_NotFound(t *testing.T) {
	r := MustNew()

	rec := doRequest(t, r, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", rec.Body.String())
}

func TestServeHTTP_EmptyBodyYieldsNilProps(t *testing.T) {
	r := MustNew()
	r.POST("/b", func(ctx context.Context, props Props) (*Response, error) {
		_, present := props[KeyBody]
		return &Response{Resp: map[string]any{"present": present}}, nil
	})

	rec := doRequest(t, r, http.MethodPost, "/b", "")

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, false, got["present"])
}
