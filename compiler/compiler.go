// Copyright 2026 The Blueweb Authors
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

package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blueweb-dev/blueweb/convert"
)

var (
	// ErrPattern indicates a malformed route template: bad placeholder
	// syntax, an unknown converter name, a duplicate parameter name, or a
	// greedy converter placed before the final segment. It is fatal to the
	// registration call that triggered it and leaves no partial state.
	ErrPattern = errors.New("invalid route template")
)

// Segment is one element of a compiled pattern: either a literal that must
// match the request segment exactly, or a named parameter bound to a
// converter.
type Segment struct {
	// Literal is the exact text to match. Only meaningful when Param is "".
	// It may be empty: a template with a trailing slash compiles to a final
	// empty literal, which is how exact trailing-slash matching falls out.
	Literal string

	// Param is the parameter name, or "" for a literal segment.
	Param string

	// ConvName is the registered name the converter was resolved from.
	ConvName string

	// Conv is the converter bound at compile time. Later registry changes
	// cannot affect it.
	Conv convert.Converter

	// Greedy marks a parameter whose converter consumes the path remainder.
	Greedy bool
}

// IsParam reports whether the segment is a parameter.
func (s Segment) IsParam() bool {
	return s.Param != ""
}

// Pattern is the compiled, immutable representation of a route template:
// an ordered sequence of literal and parameter segments. Parameter names are
// unique within one pattern. A Pattern is created once at registration time
// and is safe for concurrent matching thereafter.
type Pattern struct {
	template string
	segments []Segment
	params   []string // parameter names in declaration order
	greedy   bool     // final segment is a greedy parameter
	shape    string   // canonical structure for collision checks
}

// Compile parses a route template into a Pattern using the given converter
// registry.
//
// The template is split on '/'; a segment of the whole-placeholder form
// "<name>" or "<converter:name>" compiles to a parameter (defaulting to the
// "str" converter), anything else compiles to a literal matched verbatim. No
// percent-decoding or trailing-slash normalization is applied.
//
// Compile fails with a wrapped ErrPattern when the template does not begin
// with '/', a placeholder is malformed, a converter name is unknown, a
// parameter name repeats, or a greedy converter (such as "path") appears
// anywhere but the final segment.
func Compile(template string, reg *convert.Registry) (*Pattern, error) {
	if template == "" || template[0] != '/' {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrPattern, template)
	}

	p := &Pattern{template: template}

	// Root compiles to zero segments and matches exactly "/".
	if template == "/" {
		p.shape = "/"
		return p, nil
	}

	raw := strings.Split(template[1:], "/")
	p.segments = make([]Segment, 0, len(raw))
	seen := make(map[string]struct{}, 2)

	var shape strings.Builder
	for i, part := range raw {
		seg, err := compileSegment(template, part, reg)
		if err != nil {
			return nil, err
		}

		if seg.IsParam() {
			if _, dup := seen[seg.Param]; dup {
				return nil, fmt.Errorf("%w: %q declares parameter %q twice", ErrPattern, template, seg.Param)
			}
			seen[seg.Param] = struct{}{}
			p.params = append(p.params, seg.Param)

			if seg.Greedy {
				if i != len(raw)-1 {
					return nil, fmt.Errorf("%w: %q uses greedy converter %q before the final segment",
						ErrPattern, template, seg.ConvName)
				}
				p.greedy = true
			}
			shape.WriteString("/<" + seg.ConvName + ">")
		} else {
			shape.WriteString("/" + seg.Literal)
		}

		p.segments = append(p.segments, seg)
	}

	p.shape = shape.String()
	return p, nil
}

// CheckSyntax validates a template's placeholder grammar without resolving
// converter names. Blueprints use it to reject malformed templates at
// registration time, before the target registry is known; Compile repeats
// the full check with converter resolution at merge time.
func CheckSyntax(template string) error {
	if template == "" || template[0] != '/' {
		return fmt.Errorf("%w: %q must begin with '/'", ErrPattern, template)
	}
	if template == "/" {
		return nil
	}

	seen := make(map[string]struct{}, 2)
	for _, part := range strings.Split(template[1:], "/") {
		name, _, isParam, err := parsePlaceholder(template, part)
		if err != nil {
			return err
		}
		if !isParam {
			continue
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q declares parameter %q twice", ErrPattern, template, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// parsePlaceholder classifies one '/'-delimited template part. For a
// well-formed placeholder it returns the parameter name and converter name;
// for a plain literal it reports isParam=false. Anything in between (stray
// angle brackets, empty names) is a malformed-template error.
func parsePlaceholder(template, part string) (name, convName string, isParam bool, err error) {
	if !strings.HasPrefix(part, "<") && !strings.HasSuffix(part, ">") {
		if strings.ContainsAny(part, "<>") {
			return "", "", false, fmt.Errorf("%w: %q mixes literal text with placeholder syntax in %q",
				ErrPattern, template, part)
		}
		return "", "", false, nil
	}

	if !strings.HasPrefix(part, "<") || !strings.HasSuffix(part, ">") || len(part) < 3 {
		return "", "", false, fmt.Errorf("%w: %q has malformed placeholder %q", ErrPattern, template, part)
	}

	inner := part[1 : len(part)-1]
	if strings.ContainsAny(inner, "<>") {
		return "", "", false, fmt.Errorf("%w: %q has malformed placeholder %q", ErrPattern, template, part)
	}

	convName = convert.DefaultName
	name = inner
	if idx := strings.IndexByte(inner, ':'); idx >= 0 {
		convName = inner[:idx]
		name = inner[idx+1:]
		if convName == "" {
			return "", "", false, fmt.Errorf("%w: %q has empty converter in placeholder %q", ErrPattern, template, part)
		}
	}
	if !validParamName(name) {
		return "", "", false, fmt.Errorf("%w: %q has invalid parameter name %q", ErrPattern, template, name)
	}
	return name, convName, true, nil
}

// compileSegment compiles one '/'-delimited part of a template.
func compileSegment(template, part string, reg *convert.Registry) (Segment, error) {
	name, convName, isParam, err := parsePlaceholder(template, part)
	if err != nil {
		return Segment{}, err
	}
	if !isParam {
		return Segment{Literal: part}, nil
	}

	conv, ok := reg.Lookup(convName)
	if !ok {
		return Segment{}, fmt.Errorf("%w: %q references %w %q",
			ErrPattern, template, convert.ErrUnknownConverter, convName)
	}

	greedy := false
	if g, ok := conv.(convert.GreedyConverter); ok {
		greedy = g.Greedy()
	}

	return Segment{
		Param:    name,
		ConvName: convName,
		Conv:     conv,
		Greedy:   greedy,
	}, nil
}

// validParamName reports whether name is a usable parameter identifier:
// a letter or underscore followed by letters, digits, or underscores.
func validParamName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Template returns the original template text the pattern was compiled from.
func (p *Pattern) Template() string {
	return p.template
}

// Segments returns the compiled segment sequence. Callers must not modify
// the returned slice.
func (p *Pattern) Segments() []Segment {
	return p.segments
}

// Params returns the parameter names in declaration order.
func (p *Pattern) Params() []string {
	return p.params
}

// ParamCount returns the number of parameters in the pattern.
func (p *Pattern) ParamCount() int {
	return len(p.params)
}

// IsStatic reports whether the pattern has no parameters, meaning it matches
// exactly one literal path.
func (p *Pattern) IsStatic() bool {
	return len(p.params) == 0
}

// Greedy reports whether the pattern's final segment consumes the remainder
// of the request path.
func (p *Pattern) Greedy() bool {
	return p.greedy
}

// Shape returns the canonical structure of the pattern: literal segments
// verbatim and parameter segments as their converter name, e.g.
// "/user/<int>". Two patterns with equal shapes match the same set of paths
// regardless of parameter naming, which is the collision criterion used at
// registration time.
func (p *Pattern) Shape() string {
	return p.shape
}
