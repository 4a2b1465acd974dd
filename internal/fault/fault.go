// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fault defines the error kinds reported by the comparison
// pipeline and the context attached to them.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// A Kind classifies a pipeline fault. Kind implements error so that
// callers can test for a kind with errors.Is(err, fault.MissingKey).
type Kind int

const (
	// MalformedInput means the parsed input does not have the
	// expected nested shape.
	MalformedInput Kind = 1 + iota
	// MissingKey means an algorithm or pattern is absent where a
	// sibling combination implies it should exist.
	MissingKey
	// UnrecognizedHardware means no hardware metadata matches the
	// input file name.
	UnrecognizedHardware
	// CapacityExceeded means a group has more patterns than the
	// palette has colors.
	CapacityExceeded
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case MissingKey:
		return "missing key"
	case UnrecognizedHardware:
		return "unrecognized hardware"
	case CapacityExceeded:
		return "capacity exceeded"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string { return k.String() }

// Context locates a fault within the input. Empty fields are unknown.
type Context struct {
	File    string
	A, B    string // algorithm pair
	Type    string
	State   string
	Pattern string
	Size    int
}

// An Error is a fault of a particular Kind together with the
// combination that caused it.
type Error struct {
	Kind Kind
	Context
	Msg string
	Err error
}

// New returns an *Error of kind k with a formatted message.
func New(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of kind k wrapping err.
func Wrap(k Kind, err error) *Error {
	return &Error{Kind: k, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	field := func(k, v string) {
		if v == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	if e.File != "" {
		b.WriteString(e.File)
	}
	if e.A != "" || e.B != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s-vs-%s", e.A, e.B)
	}
	field("type", e.Type)
	field("state", e.State)
	field("pattern", e.Pattern)
	if e.Size != 0 {
		field("size", fmt.Sprint(e.Size))
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is e's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Annotate fills in any unknown fields of err's fault context from c.
// If err is not (and does not wrap) an *Error, it is returned as is.
func Annotate(err error, c Context) error {
	var fe *Error
	if !errors.As(err, &fe) {
		return err
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&fe.File, c.File)
	fill(&fe.A, c.A)
	fill(&fe.B, c.B)
	fill(&fe.Type, c.Type)
	fill(&fe.State, c.State)
	fill(&fe.Pattern, c.Pattern)
	if fe.Size == 0 {
		fe.Size = c.Size
	}
	return err
}
