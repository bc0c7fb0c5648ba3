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
	"fmt"
	"strings"
)

type segKind uint8

const (
	segLiteral segKind = iota
	segParam
	segOptional
)

// segment is one compiled element of a path pattern: a literal string, a
// required parameter, or an optional parameter.
type segment struct {
	kind  segKind
	value string // literal text, or parameter name without ':' and '?'
}

// Pattern is a compiled path pattern.
//
// Patterns are split on "/". A segment starting with ':' binds a named
// parameter; a trailing '?' marks the parameter optional. Optional
// parameters are only permitted as a trailing contiguous suffix: every
// missing optional shortens the acceptable concrete path by exactly one
// segment from the tail.
//
// Matching is purely positional. Literal segments must compare equal to the
// corresponding concrete segment; there is no backtracking.
type Pattern struct {
	raw      string
	segments []segment
	required int // count of segments that must be present in the path
}

// MatchResult is the outcome of matching a concrete path against a compiled
// pattern. Params holds the bound parameter values; absent optional
// parameters have no entry. A fresh result is produced per match and is
// never shared.
type MatchResult struct {
	Matched bool
	Params  map[string]string
}

// MatchedPath identifies which registered definition matched a request:
// the definition's literal path and its index in the table it was
// resolved from.
type MatchedPath struct {
	Path  string
	Index int
}

// Compile parses pattern into a Pattern.
//
// It fails with [ErrInvalidPattern] if an optional parameter precedes a
// required parameter or a literal segment.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{raw: pattern}
	for _, s := range splitPath(pattern) {
		var seg segment
		switch {
		case strings.HasPrefix(s, ":") && strings.HasSuffix(s, "?"):
			seg = segment{kind: segOptional, value: s[1 : len(s)-1]}
		case strings.HasPrefix(s, ":"):
			seg = segment{kind: segParam, value: s[1:]}
		default:
			seg = segment{kind: segLiteral, value: s}
		}
		if seg.kind != segOptional {
			if p.required != len(p.segments) {
				return nil, fmt.Errorf("%w: %q follows an optional parameter in %q", ErrInvalidPattern, s, pattern)
			}
			p.required++
		}
		p.segments = append(p.segments, seg)
	}
	return p, nil
}

// MustCompile is like [Compile] but panics on an invalid pattern. Route
// registration uses it to fail fast at startup.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("router.MustCompile: %v", err))
	}
	return p
}

// String returns the original pattern text.
func (p *Pattern) String() string { return p.raw }

// Match tests a concrete path against the pattern and binds parameters.
func (p *Pattern) Match(path string) MatchResult {
	segs := splitPath(path)
	if len(segs) < p.required || len(segs) > len(p.segments) {
		return MatchResult{}
	}
	params := make(map[string]string, len(segs)-countLiterals(p.segments[:len(segs)]))
	for i, spec := range p.segments {
		if i >= len(segs) {
			// Remaining specs are all optional by construction.
			break
		}
		if spec.kind == segLiteral {
			if segs[i] != spec.value {
				return MatchResult{}
			}
			continue
		}
		params[spec.value] = segs[i]
	}
	return MatchResult{Matched: true, Params: params}
}

func countLiterals(segs []segment) int {
	n := 0
	for _, s := range segs {
		if s.kind == segLiteral {
			n++
		}
	}
	return n
}

// splitPath splits a path on "/", dropping empty segments so that leading,
// trailing, and doubled slashes are insignificant.
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
