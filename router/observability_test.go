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
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_CountsByPatternAndStatus(t *testing.T) {
	rec := NewPrometheusRecorder()
	r := MustNew(WithRecorder(rec))
	r.GET("/laptops/:id", Value("ok"))

	ctx := context.Background()
	r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "/laptops/1"})
	r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "/laptops/2"})
	r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "/missing"})

	matched := rec.requests.WithLabelValues("GET", "/laptops/:id", "200")
	assert.Equal(t, float64(2), testutil.ToFloat64(matched),
		"observations are labeled by route pattern, not raw path")

	missed := rec.requests.WithLabelValues("GET", notFoundPattern, "404")
	assert.Equal(t, float64(1), testutil.ToFloat64(missed))
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	rec := NewPrometheusRecorder()
	r := MustNew(WithRecorder(rec))
	r.GET("/x", Value("ok"))
	r.Dispatch(context.Background(), Request{Method: http.MethodGet, Path: "/x"})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plank_requests_total")
	assert.Contains(t, w.Body.String(), "plank_request_duration_seconds")
}
