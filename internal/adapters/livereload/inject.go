package livereload

import (
	"bytes"
	"net/http"
	"strings"
)

const maxInjectSize = 2 << 20

// InjectScript is middleware that adds the client script tag to HTML pages before </body>.
func InjectScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isHTMLPage(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// A 304 would let the browser keep a page served before the script existed.
		r.Header.Del("If-Modified-Since")
		r.Header.Del("If-None-Match")

		injector := &injector{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(injector, r)
		injector.finalize()
	})
}

func isHTMLPage(path string) bool {
	return path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, ".html")
}

// injector buffers an HTML response so the script tag can be inserted.
// Non-HTML and oversized responses pass straight through.
type injector struct {
	http.ResponseWriter
	statusCode    int
	buffer        []byte
	buffering     bool
	headerWritten bool
	passthrough   bool
}

func (i *injector) WriteHeader(code int) {
	i.statusCode = code
	if i.passthrough {
		i.ResponseWriter.WriteHeader(code)
		i.headerWritten = true
	}
}

func (i *injector) Write(data []byte) (int, error) {
	if !i.buffering && !i.passthrough {
		contentType := i.Header().Get("Content-Type")
		if contentType != "" && !strings.Contains(contentType, "text/html") {
			i.startPassthrough()
			return i.ResponseWriter.Write(data)
		}
		i.buffering = true
	}

	if i.passthrough {
		return i.ResponseWriter.Write(data)
	}

	if len(i.buffer)+len(data) > maxInjectSize {
		i.startPassthrough()
		if len(i.buffer) > 0 {
			if _, err := i.ResponseWriter.Write(i.buffer); err != nil {
				return 0, err
			}
			i.buffer = nil
		}
		return i.ResponseWriter.Write(data)
	}

	i.buffer = append(i.buffer, data...)
	return len(data), nil
}

func (i *injector) startPassthrough() {
	i.passthrough = true
	i.Header().Del("Content-Length")
	i.ResponseWriter.WriteHeader(i.statusCode)
	i.headerWritten = true
}

// finalize must be called after the handler completes.
func (i *injector) finalize() {
	if i.passthrough || len(i.buffer) == 0 {
		if !i.headerWritten {
			i.ResponseWriter.WriteHeader(i.statusCode)
		}
		return
	}

	tag := []byte(`<script src="` + ScriptPath + `"></script>`)
	body := i.buffer
	if idx := bytes.LastIndex(bytes.ToLower(body), []byte("</body>")); idx >= 0 {
		body = append(body[:idx:idx], append(tag, body[idx:]...)...)
	} else {
		body = append(body, tag...)
	}

	i.Header().Del("Content-Length")
	i.ResponseWriter.WriteHeader(i.statusCode)
	_, _ = i.ResponseWriter.Write(body)
}
