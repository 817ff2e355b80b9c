// Package dump renders arbitrary byte buffers, for example the captured output streams of a child process, into a
// form which is safe to embed in terminal/log output. Buffers are debug-quoted so binary content can't mangle the
// display, escaped newlines are restored for readability and oversized content is truncated symmetrically.
package dump

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	linesMinOverflow = 40
	linesMaxStart    = 10
	linesMaxEnd      = 10
	linesMaxPrinted  = linesMaxStart + linesMaxEnd

	bytesMinOverflow = 8192
	bytesMaxStart    = 2048
	bytesMaxEnd      = 2048
	bytesMaxPrinted  = bytesMaxStart + bytesMaxEnd
)

// Truncation must only activate when it genuinely reduces the amount of output; these constants fail to compile if
// the always-printed span reaches the corresponding overflow threshold.
const (
	_ = uint(linesMinOverflow - linesMaxPrinted - 1)
	_ = uint(bytesMinOverflow - bytesMaxPrinted - 1)
)

// Bytes renders the given buffer for human display.
//
// The buffer is rendered in its debug-quoted form with escaped newlines converted back into literal newlines. Content
// spanning at least 40 lines is truncated to the first/last ten lines, otherwise content of at least 8KiB, for
// example binary data or one enormous line, is truncated to the first/last 2KiB.
//
// NOTE: This is a total function, it never fails or panics regardless of the buffers content.
func Bytes(data []byte) string {
	quoted := restoreNewlines(strconv.Quote(string(data)))

	// Strip the quotes at the beginning/end before breaking into lines
	lines := splitLines(quoted[1 : len(quoted)-1])

	switch {
	case len(lines) >= linesMinOverflow:
		return fmt.Sprintf(
			"<%d lines total>\"%s\"\n<%d lines omitted>\n\"%s\"",
			len(lines),
			strings.Join(lines[:linesMaxStart], "\n"),
			len(lines)-linesMaxPrinted,
			strings.Join(lines[len(lines)-linesMaxEnd:], "\n"),
		)
	case len(data) >= bytesMinOverflow:
		var (
			builder  strings.Builder
			restorer = newlineRestorer{builder: &builder}
		)

		restorer.WriteString(fmt.Sprintf(
			"<%d bytes total>%s...<%d bytes omitted>...%s",
			len(data),
			strconv.Quote(string(data[:bytesMaxStart])),
			len(data)-bytesMaxPrinted,
			strconv.Quote(string(data[len(data)-bytesMaxEnd:])),
		))

		restorer.Flush()

		return builder.String()
	default:
		return quoted
	}
}

// Plain returns the buffer as-is when it contains valid UTF-8, falling back to the debug-quoted form for binary
// content.
func Plain(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	return strconv.Quote(string(data))
}

// splitLines breaks the given string into lines without producing a trailing empty line for content which ends in a
// newline.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) != 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// restoreNewlines converts escaped newline sequences in the given string back into literal newlines.
func restoreNewlines(s string) string {
	var (
		builder  strings.Builder
		restorer = newlineRestorer{builder: &builder}
	)

	restorer.WriteString(s)
	restorer.Flush()

	return builder.String()
}

// newlineRestorer is a streaming writer which converts escaped newline sequences back into literal newlines as chunks
// are written. An odd trailing backslash is held back between writes so a sequence split across two chunks restores
// exactly as it would have in a single write.
type newlineRestorer struct {
	builder           *strings.Builder
	trailingBackslash bool
}

// WriteString restores any escaped newlines in the given chunk and writes the result to the underlying builder.
func (n *newlineRestorer) WriteString(s string) {
	buf := s
	if n.trailingBackslash {
		buf = `\` + s
	}

	var trailing int
	for idx := len(buf) - 1; idx >= 0 && buf[idx] == '\\'; idx-- {
		trailing++
	}

	n.trailingBackslash = trailing%2 != 0
	if n.trailingBackslash {
		buf = buf[:len(buf)-1]
	}

	n.builder.WriteString(strings.ReplaceAll(buf, `\n`, "\n"))
}

// Flush writes any held back trailing backslash, it must be called once after the final chunk has been written.
func (n *newlineRestorer) Flush() {
	if !n.trailingBackslash {
		return
	}

	n.builder.WriteByte('\\')
	n.trailingBackslash = false
}
