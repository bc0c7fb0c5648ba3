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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProps_Merge(t *testing.T) {
	base := Props{"a": 1, "b": "keep"}
	merged := base.Merge(Props{"a": 2, "c": true})

	assert.Equal(t, Props{"a": 2, "b": "keep", "c": true}, merged)
	assert.Equal(t, Props{"a": 1, "b": "keep"}, base, "merge must not mutate the receiver")
}

func TestProps_MergeNil(t *testing.T) {
	base := Props{"a": 1}
	merged := base.Merge(nil)

	assert.Equal(t, base, merged)
	assert.NotSame(t, &base, &merged)
}

func TestProps_Accessors(t *testing.T) {
	mp := MatchedPath{Path: "/api", Index: 2}
	props := Props{
		KeyMethod:      "GET",
		KeyParams:      map[string]string{"id": "42"},
		KeyQuery:       map[string]string{"brand": "lenovo"},
		KeyBody:        map[string]any{"k": "v"},
		KeyMatchedPath: mp,
	}

	assert.Equal(t, "GET", props.String(KeyMethod))
	assert.Equal(t, "42", props.Params()["id"])
	assert.Equal(t, "lenovo", props.Query()["brand"])
	assert.Equal(t, map[string]any{"k": "v"}, props.Body())
	assert.Equal(t, mp, props.MatchedPath())
}

func TestProps_AccessorsOnEmptyBag(t *testing.T) {
	props := Props{}

	assert.Empty(t, props.String(KeyMethod))
	assert.Nil(t, props.Params())
	assert.Nil(t, props.Query())
	assert.Nil(t, props.Body())
	assert.Equal(t, MatchedPath{}, props.MatchedPath())
}
