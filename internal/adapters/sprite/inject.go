package sprite

import (
	"bytes"

	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// Markers delimiting the injected sprite in the partial.
const (
	StartMarker = "<!-- inject:svg -->"
	EndMarker   = "<!-- endinject -->"
)

// Inject replaces everything between the markers in partial with content.
// The markers are kept and content is placed on its own line at the indentation
// of the start marker, so injecting the same content again is a no-op.
func Inject(partial, content []byte) ([]byte, error) {
	start := bytes.Index(partial, []byte(StartMarker))
	if start < 0 {
		return nil, zerr.With(zerr.New(domain.ErrPartialMarkerMissing.Error()), "marker", StartMarker)
	}
	bodyStart := start + len(StartMarker)

	end := bytes.Index(partial[bodyStart:], []byte(EndMarker))
	if end < 0 {
		return nil, zerr.With(zerr.New(domain.ErrPartialMarkerMissing.Error()), "marker", EndMarker)
	}
	end += bodyStart

	indent := lineIndent(partial, start)

	var out bytes.Buffer
	out.Grow(len(partial) + len(content))
	out.Write(partial[:bodyStart])
	out.WriteByte('\n')
	out.Write(indent)
	out.Write(content)
	out.WriteByte('\n')
	out.Write(indent)
	out.Write(partial[end:])

	return out.Bytes(), nil
}

// lineIndent returns the whitespace preceding offset on its line.
func lineIndent(b []byte, offset int) []byte {
	lineStart := bytes.LastIndexByte(b[:offset], '\n') + 1
	prefix := b[lineStart:offset]
	if len(bytes.TrimLeft(prefix, " \t")) != 0 {
		return nil
	}
	return prefix
}
