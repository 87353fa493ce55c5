// Package sprite assembles the icon files into an inline SVG sprite and
// injects it into the site's sprite partial.
package sprite

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	svgMediaType = "image/svg+xml"
	spriteOpen   = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`
	spriteClose  = `</svg>`
)

// symbolAttrs are the root attributes carried over from an icon to its symbol.
var symbolAttrs = []string{"viewBox", "preserveAspectRatio"}

// Icon is one source file of the sprite.
type Icon struct {
	// Path is the file the icon was read from. Its base name without
	// extension becomes the symbol id.
	Path    string
	Content []byte
}

// ID returns the symbol id of the icon.
func (i Icon) ID() string {
	base := filepath.Base(i.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Builder minifies icons and merges them into a sprite document.
type Builder struct {
	minifier *minify.M
}

// NewBuilder creates a Builder with the SVG minifier registered.
func NewBuilder() *Builder {
	m := minify.New()
	m.AddFunc(svgMediaType, svg.Minify)
	return &Builder{minifier: m}
}

// Build returns the sprite for icons, one <symbol> per icon in the given order.
func (b *Builder) Build(icons []Icon) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(spriteOpen)

	for _, icon := range icons {
		minified, err := b.minifier.Bytes(svgMediaType, icon.Content)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrIconMinifyFailed.Error()), "icon", icon.Path)
		}

		root, err := parseRoot(minified)
		if err != nil {
			return nil, zerr.With(err, "icon", icon.Path)
		}

		buf.WriteString(`<symbol id="`)
		buf.WriteString(icon.ID())
		buf.WriteByte('"')
		for _, name := range symbolAttrs {
			if v, ok := root.attrs[name]; ok {
				buf.WriteString(" " + name + `="` + v + `"`)
			}
		}
		buf.WriteByte('>')
		buf.Write(root.inner)
		buf.WriteString("</symbol>")
	}

	buf.WriteString(spriteClose)
	return buf.Bytes(), nil
}

type svgRoot struct {
	attrs map[string]string
	inner []byte
}

// parseRoot reads the attributes of the root <svg> element and the markup it encloses.
func parseRoot(doc []byte) (svgRoot, error) {
	root := svgRoot{attrs: map[string]string{}}
	l := xml.NewLexer(parse.NewInputBytes(doc))

	inRoot := false
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return root, zerr.Wrap(err, domain.ErrIconParseFailed.Error())
			}
			return root, zerr.New(domain.ErrIconParseFailed.Error())
		case xml.StartTagToken:
			if string(l.Text()) != "svg" {
				return root, zerr.With(zerr.New(domain.ErrIconParseFailed.Error()), "root", string(l.Text()))
			}
			inRoot = true
		case xml.AttributeToken:
			if inRoot {
				root.attrs[string(l.Text())] = unquote(l.AttrVal())
			}
		case xml.StartTagCloseVoidToken:
			if inRoot {
				return root, nil
			}
		case xml.StartTagCloseToken:
			if inRoot {
				inner, err := innerMarkup(doc)
				if err != nil {
					return root, err
				}
				root.inner = inner
				return root, nil
			}
		}
	}
}

// innerMarkup returns the bytes between the end of the root start tag and the final close tag.
func innerMarkup(doc []byte) ([]byte, error) {
	start := startTagEnd(doc, bytes.Index(doc, []byte("<svg")))
	end := bytes.LastIndex(doc, []byte(spriteClose))
	if start < 0 || end < start {
		return nil, zerr.New(domain.ErrIconParseFailed.Error())
	}
	return bytes.TrimSpace(doc[start:end]), nil
}

// startTagEnd returns the offset just past the '>' closing the tag opened at from,
// ignoring '>' inside quoted attribute values.
func startTagEnd(doc []byte, from int) int {
	if from < 0 {
		return -1
	}
	var quote byte
	for i := from; i < len(doc); i++ {
		c := doc[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return -1
}

func unquote(v []byte) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = v[1 : len(v)-1]
	}
	return string(v)
}
