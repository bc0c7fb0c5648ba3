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

import "context"

// Stage is one step of a middleware pipeline.
//
// A stage receives the props accumulated so far and returns partial props
// to merge for downstream stages. Returning a non-nil *Response terminates
// the chain immediately with that response; remaining stages are not
// invoked. This is the sole short-circuit mechanism; guard stages use it
// instead of panics or sentinel errors. A returned error aborts the request
// and maps to a 500 at the HTTP boundary.
type Stage func(ctx context.Context, props Props) (Props, *Response, error)

// Compose builds a Handler from an ordered sequence of stages.
//
// The returned handler threads the initial props through each stage in
// order, merging every stage's partial props into the accumulated bag
// before calling the next. The first stage to return a terminal response
// ends the chain; the final stage must do so, otherwise the handler fails
// with [ErrNoResponse].
func Compose(stages ...Stage) Handler {
	return func(ctx context.Context, props Props) (*Response, error) {
		for _, stage := range stages {
			partial, terminal, err := stage(ctx, props)
			if err != nil {
				return nil, err
			}
			if terminal != nil {
				return terminal, nil
			}
			props = props.Merge(partial)
		}
		return nil, ErrNoResponse
	}
}

// Final adapts a Handler into a terminal Stage, for use as the last element
// of a composed pipeline.
func Final(h Handler) Stage {
	return func(ctx context.Context, props Props) (Props, *Response, error) {
		resp, err := h(ctx, props)
		if err != nil {
			return nil, nil, err
		}
		if resp == nil {
			return nil, nil, ErrNoResponse
		}
		return nil, resp, nil
	}
}
