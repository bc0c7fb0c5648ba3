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

// Package router implements Plank's HTTP routing and middleware-composition
// engine.
//
// Requests are dispatched to handlers selected by method and path pattern.
// Patterns support named parameters (":id") and trailing optional parameters
// (":id?"). Routes are resolved in registration order and the first match
// wins; there is no specificity scoring. Handlers matched by a plain path
// prefix for any method ("responders") can be mounted alongside pattern
// routes with [Router.Mount].
//
// Handler input is a props bag ([Props]) built by the dispatcher from the
// request (body, params, query, matched-path descriptor) and threaded
// through an ordered pipeline of stages ([Stage]). Each stage contributes
// partial props via a non-destructive merge, or terminates the chain early
// with a [Response]. See [Compose].
//
// Example:
//
//	r := router.MustNew()
//	r.GET("/hello/:name?", func(ctx context.Context, props router.Props) (*router.Response, error) {
//	    name, ok := props.Params()["name"]
//	    if !ok {
//	        name = "world"
//	    }
//	    return &router.Response{Resp: "hello " + name}, nil
//	})
//	r.Mount("/api", engine.Handler())
//	r.Serve(":8080")
package router
