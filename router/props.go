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
	"maps"

	"github.com/spf13/cast"
)

// Well-known props keys populated by the dispatcher.
const (
	KeyMethod      = "method"
	KeyPath        = "path"
	KeyBody        = "body"
	KeyParams      = "params"
	KeyQuery       = "query"
	KeyMatchedPath = "matchedPath"
	KeyPathPattern = "pathPattern"
)

// Props is the accumulating input bag threaded through pipeline stages into
// the final handler. Stages communicate exclusively by returning partial
// props for merging; no stage may mutate a previous stage's copy.
type Props map[string]any

// Merge returns a new Props combining p and partial. Keys from partial
// override keys from p; all other keys are carried forward. Neither input
// is modified.
func (p Props) Merge(partial Props) Props {
	merged := make(Props, len(p)+len(partial))
	maps.Copy(merged, p)
	maps.Copy(merged, partial)
	return merged
}

// String returns the value for key rendered as a string, or "" when absent.
func (p Props) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

// Params returns the bound path parameters, or nil when the request was not
// matched by a parameter pattern.
func (p Props) Params() map[string]string {
	params, _ := p[KeyParams].(map[string]string)
	return params
}

// Query returns the parsed query string, or nil when the request carried
// none.
func (p Props) Query() map[string]string {
	q, _ := p[KeyQuery].(map[string]string)
	return q
}

// Body returns the parsed request body, or nil for bodyless requests.
func (p Props) Body() any { return p[KeyBody] }

// MatchedPath returns the descriptor of the definition that matched the
// request.
func (p Props) MatchedPath() MatchedPath {
	mp, _ := p[KeyMatchedPath].(MatchedPath)
	return mp
}
