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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Store loads and persists the backing document. The engine reads through
// it at the start of every request and writes through it as the final step
// of every mutation, so implementations must return independent values per
// Load: a caller's mutations before Save must not leak into later loads.
type Store interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, doc map[string]any) error
}

// FileStore keeps the document in a single UTF-8 JSON file whose top-level
// value is an object. A missing file loads as an empty document.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads and parses the document file.
func (s *FileStore) Load(ctx context.Context) (map[string]any, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsondb: read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("jsondb: parse %s: %w", s.path, err)
	}
	return doc, nil
}

// Save writes the full document back to the file.
func (s *FileStore) Save(ctx context.Context, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsondb: encode document: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("jsondb: write %s: %w", s.path, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral serving. Load
// returns a deep copy with the same value shapes a file round-trip would
// produce, so engine mutations stay invisible until Save.
type MemStore struct {
	mu  sync.Mutex
	doc map[string]any
}

// NewMemStore creates a MemStore seeded with doc; a nil doc starts empty.
func NewMemStore(doc map[string]any) (*MemStore, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	clone, err := cloneDoc(doc)
	if err != nil {
		return nil, err
	}
	return &MemStore{doc: clone}, nil
}

// Load returns a deep copy of the stored document.
func (s *MemStore) Load(ctx context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDoc(s.doc)
}

// Save replaces the stored document with a deep copy of doc.
func (s *MemStore) Save(ctx context.Context, doc map[string]any) error {
	clone, err := cloneDoc(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = clone
	s.mu.Unlock()
	return nil
}

// cloneDoc copies a document through a JSON round-trip. This both isolates
// the copy and normalizes value shapes (numbers as float64, objects as
// map[string]any) to match what FileStore.Load produces.
func cloneDoc(doc map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("jsondb: clone document: %w", err)
	}
	var clone map[string]any
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, fmt.Errorf("jsondb: clone document: %w", err)
	}
	return clone, nil
}
