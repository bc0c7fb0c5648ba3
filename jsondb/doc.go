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

// Package jsondb serves a single JSON document as a miniature REST API.
//
// The document's top-level keys are addressed as collections and their
// elements as items. An [Engine] mounted on a router prefix interprets the
// path remainder as one of four addressing kinds:
//
//	(empty)                → the whole document
//	/<name>                → the collection <name>
//	/<name>/<key>          → the item with id <key> (array collections),
//	                         or the subkey <key> (object collections)
//	/<name>/<key>/byindex  → the element at position <key>
//
// Each request re-reads the document from its [Store], applies the
// operation implied by the HTTP method and addressing kind in memory, and
// writes the whole document back after the response value has been
// computed. In dry-run mode the write step is skipped entirely, so
// mutations are computed but never persisted.
//
// The document is a shared mutable resource with no locking and no
// optimistic-concurrency check: concurrent writers race on the
// read-modify-write cycle, and the last completed write wins. This is an
// acknowledged limitation of the single-file persistence model.
//
// Example:
//
//	engine := jsondb.NewFile("db.json")
//	r := router.MustNew()
//	r.Mount("/api", engine.Handler())
package jsondb
