// Package pred defines the predicate protocol used by assertion calls to match exit codes and captured output
// buffers. Assertions accept either a literal expected value or an arbitrary predicate; the conversion functions in
// this package normalize both into a single predicate interface.
package pred

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/exp/slices"
)

// Code is a predicate over a process exit code.
type Code interface {
	fmt.Stringer

	// Match returns a boolean indicating whether the given exit code satisfies the predicate.
	Match(code int) bool
}

// Buffer is a predicate over a captured output buffer.
type Buffer interface {
	fmt.Stringer

	// Match returns a boolean indicating whether the given buffer satisfies the predicate.
	Match(data []byte) bool
}

// Explainer may optionally be implemented by a 'Buffer' predicate to produce a richer report for a buffer which
// failed to match, for example a diff of the expected/actual content.
type Explainer interface {
	Explain(actual []byte) string
}

// ForCode converts the supported expected values into a 'Code' predicate; an int becomes an exact equality check, a
// slice of ints becomes a set membership check and an existing 'Code' passes through unchanged.
//
// NOTE: Unsupported types panic with a descriptive message, mirroring how a violated assertion is reported.
func ForCode(expected any) Code {
	switch expected := expected.(type) {
	case Code:
		return expected
	case int:
		return Eq(expected)
	case []int:
		return In(expected...)
	default:
		panic(fmt.Sprintf("unsupported exit code predicate type %T, expected int, []int or pred.Code", expected))
	}
}

// ForBuffer converts the supported expected values into a 'Buffer' predicate; a string becomes an equality check on
// the decoded text, a byte slice becomes an exact byte equality check and an existing 'Buffer' passes through
// unchanged.
//
// NOTE: Unsupported types panic with a descriptive message, mirroring how a violated assertion is reported.
func ForBuffer(expected any) Buffer {
	switch expected := expected.(type) {
	case Buffer:
		return expected
	case string:
		return EqText(expected)
	case []byte:
		return EqBytes(expected)
	default:
		panic(fmt.Sprintf("unsupported output predicate type %T, expected string, []byte or pred.Buffer", expected))
	}
}

// Eq returns a predicate which is satisfied by exactly the given exit code.
func Eq(code int) Code {
	return eqCode{expected: code}
}

type eqCode struct {
	expected int
}

func (e eqCode) Match(code int) bool {
	return code == e.expected
}

func (e eqCode) String() string {
	return strconv.Itoa(e.expected)
}

// In returns a predicate which is satisfied by any one of the given exit codes.
func In(codes ...int) Code {
	return inCodes{expected: codes}
}

type inCodes struct {
	expected []int
}

func (i inCodes) Match(code int) bool {
	return slices.Contains(i.expected, code)
}

func (i inCodes) String() string {
	return fmt.Sprintf("one of %v", i.expected)
}

// EqBytes returns a predicate which is satisfied only by a buffer exactly equal to the expected bytes.
func EqBytes(expected []byte) Buffer {
	return eqBytes{expected: expected}
}

type eqBytes struct {
	expected []byte
}

func (e eqBytes) Match(data []byte) bool {
	return bytes.Equal(data, e.expected)
}

func (e eqBytes) String() string {
	return strconv.Quote(string(e.expected))
}

// EqText returns a predicate which requires the buffer to be valid UTF-8 which decodes to exactly the expected text.
// A buffer which isn't valid UTF-8 fails the predicate, it's not an error.
func EqText(expected string) Buffer {
	return eqText{expected: expected}
}

type eqText struct {
	expected string
}

func (e eqText) Match(data []byte) bool {
	return utf8.Valid(data) && string(data) == e.expected
}

func (e eqText) String() string {
	return strconv.Quote(e.expected)
}

// Explain implements the 'Explainer' interface, producing a unified diff of the expected/actual text.
func (e eqText) Explain(actual []byte) string {
	if !utf8.Valid(actual) {
		return "actual output is not valid UTF-8"
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(e.expected),
		B:        difflib.SplitLines(string(actual)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return ""
	}

	return diff
}
