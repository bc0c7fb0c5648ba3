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

type mountKind uint8

const (
	mountPattern mountKind = iota
	mountPrefix
)

// Reserved definition keys that are never passed through to props as
// extras. They correspond to the structural fields of a definition.
var reservedKeys = map[string]struct{}{
	"path": {},
	"resp": {},
	"use":  {},
	"root": {},
}

// Route is a registered definition: a method, a path pattern (or mount
// prefix), the handler, its per-route stages, and any custom extras.
// Routes are immutable once registered and owned by the route table.
type Route struct {
	method   string
	path     string   // literal pattern text, or mount prefix
	pattern  *Pattern // nil for prefix mounts
	kind     mountKind
	stages   []Stage
	extras   Props
	composed Handler // stages + handler, composed at registration time
}

// Method returns the HTTP method the route is registered for, or "" for
// any-method responder mounts.
func (rt *Route) Method() string { return rt.method }

// Path returns the literal pattern text, or the mount prefix for
// responder mounts.
func (rt *Route) Path() string { return rt.path }

// IsResponder reports whether the route is a prefix-matched responder
// mount rather than a pattern route.
func (rt *Route) IsResponder() bool { return rt.kind == mountPrefix }

// RouteOption configures a single route at registration time.
type RouteOption func(*Route)

// Use prepends pipeline stages to the route's handler. Stages run in the
// given order before the handler; any of them may terminate the chain
// early with a response.
func Use(stages ...Stage) RouteOption {
	return func(rt *Route) {
		rt.stages = append(rt.stages, stages...)
	}
}

// WithExtras attaches custom keys to the route definition. They are passed
// through verbatim into the handler's props, except for the reserved keys
// "path", "resp", "use", and "root".
func WithExtras(extras Props) RouteOption {
	return func(rt *Route) {
		if rt.extras == nil {
			rt.extras = Props{}
		}
		for k, v := range extras {
			rt.extras[k] = v
		}
	}
}
