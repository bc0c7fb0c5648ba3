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

import "strings"

// Kind classifies a document-store path into the addressing state machine.
// It is derived per request and never persisted.
type Kind uint8

const (
	// KindRoot addresses the whole document.
	KindRoot Kind = iota
	// KindCollection addresses a top-level key.
	KindCollection
	// KindItem addresses an element of a collection, resolved lazily as
	// by-id (array collections) or as an object subkey.
	KindItem
	// KindItemByIndex addresses an array element by position.
	KindItemByIndex
	// KindInvalid marks a remainder the state machine cannot classify.
	KindInvalid
)

// byIndexMarker is the trailing segment selecting positional addressing.
const byIndexMarker = "byindex"

// address is the parsed form of the path remainder under the mount prefix.
type address struct {
	kind Kind
	name string // collection name
	key  string // item id, object subkey, or array index
}

// parseAddress classifies the path remainder after the mount prefix.
func parseAddress(remainder string) address {
	segs := splitPath(remainder)
	switch len(segs) {
	case 0:
		return address{kind: KindRoot}
	case 1:
		return address{kind: KindCollection, name: segs[0]}
	case 2:
		return address{kind: KindItem, name: segs[0], key: segs[1]}
	case 3:
		if segs[2] == byIndexMarker {
			return address{kind: KindItemByIndex, name: segs[0], key: segs[1]}
		}
	}
	return address{kind: KindInvalid}
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
