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
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Defaults(t *testing.T) {
	resp, err := (&Response{Resp: "hello"}).normalize(context.Background(), Props{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Type)
}

func TestNormalize_ContentTypes(t *testing.T) {
	tests := []struct {
		name string
		resp any
		want string
	}{
		{"string is plain text", "hi", "text/plain; charset=utf-8"},
		{"bytes are plain text", []byte("hi"), "text/plain; charset=utf-8"},
		{"nil is plain text", nil, "text/plain; charset=utf-8"},
		{"map is json", map[string]any{"a": 1}, "application/json"},
		{"slice is json", []any{1, 2}, "application/json"},
		{"number is json", 42, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := (&Response{Resp: tt.resp}).normalize(context.Background(), Props{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Type)
		})
	}
}

func TestNormalize_ExplicitTypeAndStatusKept(t *testing.T) {
	resp, err := (&Response{Resp: "<h1>hi</h1>", Status: 201, Type: "text/html"}).
		normalize(context.Background(), Props{})
	require.NoError(t, err)

	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, "text/html", resp.Type)
}

func TestNormalize_DeferredInvokedExactlyOnce(t *testing.T) {
	calls := 0
	d := Deferred(func(ctx context.Context, props Props) (any, error) {
		calls++
		return map[string]any{"id": props["id"]}, nil
	})

	resp, err := (&Response{Resp: d}).normalize(context.Background(), Props{"id": "42"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, map[string]any{"id": "42"}, resp.Resp)
	assert.Equal(t, "application/json", resp.Type)
}

func TestNormalize_DeferredResultNotReinvoked(t *testing.T) {
	inner := Deferred(func(context.Context, Props) (any, error) {
		t.Fatal("inner deferred must not be invoked")
		return nil, nil
	})
	outer := Deferred(func(context.Context, Props) (any, error) {
		return inner, nil
	})

	resp, err := (&Response{Resp: outer}).normalize(context.Background(), Props{})
	require.NoError(t, err)

	_, stillCallable := resp.Resp.(Deferred)
	assert.True(t, stillCallable, "the one-level invocation result is substituted as-is")
}

func TestNormalize_PlainFuncVariant(t *testing.T) {
	resp, err := (&Response{Resp: func(props Props) any {
		return "hi " + props.String("name")
	}}).normalize(context.Background(), Props{"name": "plank"})
	require.NoError(t, err)

	assert.Equal(t, "hi plank", resp.Resp)
}

func TestNormalize_DeferredError(t *testing.T) {
	boom := errors.New("boom")
	d := Deferred(func(context.Context, Props) (any, error) { return nil, boom })

	_, err := (&Response{Resp: d}).normalize(context.Background(), Props{})
	assert.ErrorIs(t, err, boom)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := &Response{Resp: "x"}
	out, err := in.normalize(context.Background(), Props{})
	require.NoError(t, err)

	assert.Zero(t, in.Status)
	assert.Empty(t, in.Type)
	assert.NotSame(t, in, out)
}

func TestValue(t *testing.T) {
	resp, err := Value(map[string]any{"ok": true})(context.Background(), Props{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, resp.Resp)
}
