package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

// PrettyJSON re-indents JSON responses with two spaces. Non-JSON responses
// pass through byte for byte.
func PrettyJSON(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bw := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(bw, r)

			body := bw.buf.Bytes()
			if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && len(body) > 0 {
				var out bytes.Buffer
				if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err == nil {
					out.WriteByte('\n')
					body = out.Bytes()
				}
			}
			w.Header().Del("Content-Length")
			w.WriteHeader(bw.status)
			_, _ = w.Write(body)
		})
	}
}

type bufferedWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.buf.Write(p)
}
