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

import "errors"

var (
	// ErrInvalidPattern indicates a malformed path pattern at registration
	// time, such as an optional parameter followed by a required segment.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrNilHandler indicates that a route was registered without a handler.
	ErrNilHandler = errors.New("route handler must not be nil")

	// ErrNoResponse indicates that a pipeline ran out of stages without any
	// stage producing a terminal response.
	ErrNoResponse = errors.New("pipeline completed without a terminal response")

	// ErrServerTimeoutInvalid indicates that a server timeout value must be
	// positive.
	ErrServerTimeoutInvalid = errors.New("server timeout must be positive")
)
