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

package jsondb

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/plankhttp/plank/router"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Engine is the document-CRUD responder. It is mounted on a router prefix
// and interprets the path remainder through the addressing state machine,
// applying the operation implied by the HTTP method.
type Engine struct {
	store  Store
	dryRun bool
	logger *slog.Logger
}

// Option defines functional options for engine construction.
type Option func(*Engine)

// WithDryRun computes mutations without ever persisting them. Reads are
// unaffected.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithLogger sets the structured logger for load and save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine over the given store.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFile creates an engine backed by a single JSON file.
func NewFile(path string, opts ...Option) *Engine {
	return New(NewFileStore(path), opts...)
}

// DryRun reports whether the engine skips persistence.
func (e *Engine) DryRun() bool { return e.dryRun }

// Handler returns the responder to mount on a router prefix:
//
//	r.Mount("/api", engine.Handler())
func (e *Engine) Handler() router.Handler {
	return e.handle
}

// handle runs one request: load the document fresh, apply the operation in
// memory, and persist afterwards unless in dry-run mode. The response is
// computed before the write, so a persistence failure is logged without
// altering the already-computed response.
func (e *Engine) handle(ctx context.Context, props router.Props) (*router.Response, error) {
	method := props.String(router.KeyMethod)
	path := props.String(router.KeyPath)
	remainder := strings.TrimPrefix(path, props.MatchedPath().Path)
	addr := parseAddress(remainder)

	doc, err := e.store.Load(ctx)
	if err != nil {
		// A read failure degrades to an empty document so lookups resolve
		// to 404 instead of propagating an I/O error to the caller.
		e.logger.Warn("document load failed, treating as empty", "error", err)
		doc = map[string]any{}
	}

	resp, mutated := e.apply(doc, method, addr, props.Body(), props.Query())

	if mutated && !e.dryRun {
		if err := e.store.Save(ctx, doc); err != nil {
			e.logger.Error("document save failed", "error", err)
		}
	}
	return resp, nil
}

// apply executes the (method × addressing kind) operation matrix against
// the in-memory document. It reports whether the document was mutated.
func (e *Engine) apply(doc map[string]any, method string, addr address, body any, query map[string]string) (*router.Response, bool) {
	if addr.kind == KindInvalid {
		return badRequest(), false
	}
	switch method {
	case http.MethodGet:
		return e.get(doc, addr, query), false
	case http.MethodPost:
		return e.post(doc, addr, body)
	case http.MethodPut:
		return e.put(doc, addr, body)
	case http.MethodPatch:
		return e.patch(doc, addr, body)
	case http.MethodDelete:
		return e.del(doc, addr)
	}
	return badRequest(), false
}

func (e *Engine) get(doc map[string]any, addr address, query map[string]string) *router.Response {
	switch addr.kind {
	case KindRoot:
		return ok(doc)

	case KindCollection:
		v, exists := doc[addr.name]
		if !exists {
			return notFound()
		}
		if items, isArray := v.([]any); isArray && len(query) > 0 {
			return ok(filterItems(items, query))
		}
		return ok(v)

	case KindItem:
		switch coll := doc[addr.name].(type) {
		case []any:
			if i := indexByID(coll, addr.key); i >= 0 {
				return ok(coll[i])
			}
		case map[string]any:
			if v, exists := coll[addr.key]; exists {
				return ok(v)
			}
		}
		return notFound()

	case KindItemByIndex:
		items, i, found := elementAt(doc, addr)
		if !found {
			return notFound()
		}
		return ok(items[i])
	}
	return badRequest()
}

func (e *Engine) post(doc map[string]any, addr address, body any) (*router.Response, bool) {
	switch addr.kind {
	case KindRoot:
		obj, isObject := body.(map[string]any)
		if !isObject {
			return badRequest(), false
		}
		maps.Copy(doc, obj)
		return ok(body), true

	case KindCollection:
		existing, exists := doc[addr.name]
		if !exists {
			doc[addr.name] = []any{body}
			return ok(body), true
		}
		items, isArray := existing.([]any)
		if !isArray {
			return badRequest(), false
		}
		doc[addr.name] = append(items, body)
		return ok(body), true
	}

	// Item-addressed resources cannot be created.
	return unprocessable(), false
}

func (e *Engine) put(doc map[string]any, addr address, body any) (*router.Response, bool) {
	switch addr.kind {
	case KindRoot:
		obj, isObject := body.(map[string]any)
		if !isObject {
			return badRequest(), false
		}
		clear(doc)
		maps.Copy(doc, obj)
		return ok(body), true

	case KindCollection:
		doc[addr.name] = body
		return ok(body), true

	case KindItem:
		switch coll := doc[addr.name].(type) {
		case []any:
			if i := indexByID(coll, addr.key); i >= 0 {
				coll[i] = body
				return ok(body), true
			}
		case map[string]any:
			coll[addr.key] = body
			return ok(body), true
		}
		return notFound(), false

	case KindItemByIndex:
		items, i, found := elementAt(doc, addr)
		if !found {
			return notFound(), false
		}
		items[i] = body
		return ok(body), true
	}
	return badRequest(), false
}

func (e *Engine) patch(doc map[string]any, addr address, body any) (*router.Response, bool) {
	switch addr.kind {
	case KindRoot:
		obj, isObject := body.(map[string]any)
		if !isObject {
			return badRequest(), false
		}
		maps.Copy(doc, obj)
		return ok(doc), true

	case KindItem:
		switch coll := doc[addr.name].(type) {
		case []any:
			i := indexByID(coll, addr.key)
			if i < 0 {
				return notFound(), false
			}
			item, itemIsObject := coll[i].(map[string]any)
			obj, bodyIsObject := body.(map[string]any)
			if !itemIsObject || !bodyIsObject {
				return badRequest(), false
			}
			maps.Copy(item, obj)
			return ok(item), true
		case map[string]any:
			coll[addr.key] = body
			return ok(body), true
		}
		return notFound(), false
	}

	// A collection cannot be patched as a whole, and by-index addressing is
	// not permitted for PATCH (only by-id). DELETE by-index is accepted;
	// the asymmetry is deliberate product behavior.
	return badRequest(), false
}

func (e *Engine) del(doc map[string]any, addr address) (*router.Response, bool) {
	switch addr.kind {
	case KindCollection:
		delete(doc, addr.name)
		return okStatus(), true

	case KindItem:
		switch coll := doc[addr.name].(type) {
		case []any:
			if i := indexByID(coll, addr.key); i >= 0 {
				doc[addr.name] = append(coll[:i], coll[i+1:]...)
				return okStatus(), true
			}
		case map[string]any:
			if _, exists := coll[addr.key]; exists {
				delete(coll, addr.key)
				return okStatus(), true
			}
		}
		return notFound(), false

	case KindItemByIndex:
		items, i, found := elementAt(doc, addr)
		if !found {
			return notFound(), false
		}
		doc[addr.name] = append(items[:i], items[i+1:]...)
		return okStatus(), true
	}

	// The whole document cannot be deleted.
	return badRequest(), false
}

// indexByID finds the array element whose "id" field equals key,
// string-compared so numeric ids match their path rendering. Returns -1
// when no element matches.
func indexByID(items []any, key string) int {
	for i, item := range items {
		obj, isObject := item.(map[string]any)
		if !isObject {
			continue
		}
		if id, exists := obj["id"]; exists && cast.ToString(id) == key {
			return i
		}
	}
	return -1
}

// elementAt resolves a by-index address to the collection and a bounds-
// checked position.
func elementAt(doc map[string]any, addr address) ([]any, int, bool) {
	items, isArray := doc[addr.name].([]any)
	if !isArray {
		return nil, 0, false
	}
	i, err := strconv.Atoi(addr.key)
	if err != nil || i < 0 || i >= len(items) {
		return nil, 0, false
	}
	return items, i, true
}

// filterItems keeps the elements whose fields equal every supplied query
// parameter, compared as strings.
func filterItems(items []any, query map[string]string) []any {
	kept := make([]any, 0, len(items))
	for _, item := range items {
		obj, isObject := item.(map[string]any)
		if !isObject {
			continue
		}
		matches := true
		for k, want := range query {
			if cast.ToString(obj[k]) != want {
				matches = false
				break
			}
		}
		if matches {
			kept = append(kept, item)
		}
	}
	return kept
}

func ok(v any) *router.Response {
	return &router.Response{Resp: v, Status: http.StatusOK}
}

func okStatus() *router.Response {
	return &router.Response{Status: http.StatusOK}
}

func notFound() *router.Response {
	return &router.Response{Resp: "not found", Status: http.StatusNotFound}
}

func badRequest() *router.Response {
	return &router.Response{Resp: "bad request", Status: http.StatusBadRequest}
}

func unprocessable() *router.Response {
	return &router.Response{Resp: "unprocessable entity", Status: http.StatusUnprocessableEntity}
}
