package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
)

// Compress gzips responses for clients that send Accept-Encoding: gzip.
// Small bodies are passed through uncompressed.
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// GzipReader transparently decompresses gzipped request bodies. A body that
// is not valid gzip is rejected with 400 and no content.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") != "gzip" {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to read gzipped request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = gzReader
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
