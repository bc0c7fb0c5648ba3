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

// Package middleware provides reusable pipeline stages for the router.
//
// Each stage follows the pipeline contract: it contributes partial props
// visible to downstream stages and the handler, or terminates the chain
// with an immediate response.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/plankhttp/plank/router"
)

// KeyRequestID is the props key under which [RequestID] publishes its id.
const KeyRequestID = "requestID"

// RequestID returns a stage that tags each request with a fresh UUID,
// available to downstream stages and handlers under [KeyRequestID].
func RequestID() router.Stage {
	return func(ctx context.Context, props router.Props) (router.Props, *router.Response, error) {
		return router.Props{KeyRequestID: uuid.NewString()}, nil, nil
	}
}

// AccessLog returns a stage that logs one line per request. It contributes
// no props.
func AccessLog(logger *slog.Logger) router.Stage {
	return func(ctx context.Context, props router.Props) (router.Props, *router.Response, error) {
		logger.InfoContext(ctx, "request",
			"method", props.String(router.KeyMethod),
			"path", props.String(router.KeyPath),
			"pattern", props.String(router.KeyPathPattern),
			"request_id", props.String(KeyRequestID),
		)
		return nil, nil, nil
	}
}

// RequireToken returns a guard stage that terminates the chain with a 401
// unless the request's "token" query parameter equals token.
func RequireToken(token string) router.Stage {
	unauthorized := &router.Response{Resp: "unauthorized", Status: http.StatusUnauthorized}
	return func(ctx context.Context, props router.Props) (router.Props, *router.Response, error) {
		if props.Query()["token"] != token {
			return nil, unauthorized, nil
		}
		return nil, nil, nil
	}
}
