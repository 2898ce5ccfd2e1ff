// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/steampulse/internal/cache"
	"github.com/tomtom215/steampulse/internal/logging"
)

// CacheHeader reports HIT or MISS for cacheable requests.
const CacheHeader = "X-Cache"

// cachedResponse is the stored form of a successful GET response.
type cachedResponse struct {
	ContentType  string `json:"content_type"`
	CacheControl string `json:"cache_control,omitempty"`
	Body         []byte `json:"body"`
}

// ResponseCache serves GET responses from store and stores 200 responses
// for ttl, except those marked Cache-Control: no-store. A nil store disables caching. Store failures fall through to next.
func ResponseCache(store cache.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := responseCacheKey(r)

			data, ok, err := store.Fetch(ctx, key)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("backend", store.Name()).Msg("response cache lookup failed")
			}
			if ok {
				var cached cachedResponse
				if err := json.Unmarshal(data, &cached); err == nil {
					writeCached(w, &cached)
					return
				}
			}

			rec := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set(CacheHeader, "MISS")
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK || strings.Contains(w.Header().Get("Cache-Control"), "no-store") {
				return
			}
			payload, err := json.Marshal(cachedResponse{
				ContentType:  w.Header().Get("Content-Type"),
				CacheControl: w.Header().Get("Cache-Control"),
				Body:         rec.body.Bytes(),
			})
			if err != nil {
				return
			}
			if err := store.Put(ctx, key, payload, ttl); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("backend", store.Name()).Msg("response cache store failed")
			}
		})
	}
}

func responseCacheKey(r *http.Request) string {
	// url.Values marshals with sorted keys, so parameter order does not matter.
	return cache.GenerateKey("http:"+r.URL.Path, r.URL.Query())
}

func writeCached(w http.ResponseWriter, c *cachedResponse) {
	h := w.Header()
	if c.ContentType != "" {
		h.Set("Content-Type", c.ContentType)
	}
	if c.CacheControl != "" {
		h.Set("Cache-Control", c.CacheControl)
	}
	h.Set(CacheHeader, "HIT")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(c.Body)
}

// captureWriter tees the response body so it can be stored after the handler returns.
type captureWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}
