package codebase

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// offsetOf converts an LSP position, whose character counts UTF-16 code
// units, into a byte offset of text. Positions past the end of a line
// clamp to the line end.
func offsetOf(text []byte, pos protocol.Position) int {
	off := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		i := bytes.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}
	units := protocol.UInteger(0)
	for off < len(text) && units < pos.Character {
		r, size := utf8.DecodeRune(text[off:])
		if r == '\n' {
			break
		}
		units++
		if r >= 0x10000 {
			units++
		}
		off += size
	}
	return off
}

// positionOf converts a byte offset of text into an LSP position.
func positionOf(text []byte, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	var pos protocol.Position
	start := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			pos.Line++
			start = i + 1
		}
	}
	for _, r := range string(text[start:offset]) {
		pos.Character++
		if r >= 0x10000 {
			pos.Character++
		}
	}
	return pos
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}
