package restapi

import (
	"fmt"
	"net/http"
)

const noCacheHeaderValue = "no-cache, no-store, must-revalidate"

// CacheControlMiddleware stamps successful responses with a max-age matching
// the endpoint's cache tier (models.CacheDuration*). Error responses always
// go out uncacheable so a transient failure is never pinned by a proxy.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	headerValue := noCacheHeaderValue
	if durationSeconds > 0 {
		headerValue = fmt.Sprintf("public, max-age=%d", durationSeconds)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, successValue: headerValue}, r)
	})
}

// cacheControlWriter defers the Cache-Control decision until the status code
// is known, since handlers only reveal success at WriteHeader time.
type cacheControlWriter struct {
	http.ResponseWriter
	successValue  string
	headerWritten bool
}

func (w *cacheControlWriter) WriteHeader(code int) {
	if !w.headerWritten {
		w.headerWritten = true
		value := noCacheHeaderValue
		if code >= 200 && code < 300 {
			value = w.successValue
		}
		w.ResponseWriter.Header().Set("Cache-Control", value)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
