package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperliquid-tools/hl-proxy/pkg/cache"
	"github.com/hyperliquid-tools/hl-proxy/pkg/upstream"
)

// Cache marker headers set on /info responses.
const (
	headerCache     = "X-Cache"
	headerCacheType = "X-Cache-Type"

	cacheHit   = "HIT"
	cacheMiss  = "MISS"
	cacheError = "ERROR"
)

// handleInfo serves the cached read path: canonical key lookup, forward on
// miss, cache successful responses with the type's TTL.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	infoType := "unknown"
	if t, ok := payload["type"].(string); ok && t != "" {
		infoType = t
	}

	key, err := cache.CanonicalKeyFromPayload(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if cached, ok := s.store.Get(key, infoType); ok {
		w.Header().Set(headerCache, cacheHit)
		w.Header().Set(headerCacheType, infoType)
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	resp, err := s.upstream.Info(r.Context(), body)
	if err != nil {
		w.Header().Set(headerCache, cacheError)
		writeError(w, http.StatusBadGateway, upstreamErrorMessage(err))
		return
	}

	// Only 200 responses are cacheable; upstream errors pass through uncached.
	if resp.OK() {
		user := extractUser(payload, r.Header)
		s.store.Put(key, resp.Body, cache.TTLFor(infoType), user)
	}

	w.Header().Set(headerCache, cacheMiss)
	w.Header().Set(headerCacheType, infoType)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

// handleExchange serves the write path: always forward, pass the upstream
// response through verbatim, and invalidate the acting user's cache entries
// after a logically successful action.
func (s *Server) handleExchange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := s.upstream.Exchange(r.Context(), body)
	if err != nil {
		writeError(w, http.StatusBadGateway, upstreamErrorMessage(err))
		return
	}

	if resp.OK() {
		s.invalidateAfterExchange(body, r.Header, resp.Body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

// invalidateAfterExchange drops cache entries made stale by a successful
// exchange action. Fails soft: attribution or parse problems degrade to the
// user-scoped class fallback or to doing nothing, never to an error for the
// caller.
func (s *Server) invalidateAfterExchange(reqBody []byte, header http.Header, respBody []byte) {
	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil || result.Status != "ok" {
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(reqBody, &payload); err != nil {
		payload = nil
	}

	if user := extractUser(payload, header); user != "" {
		if removed := s.store.InvalidateUser(user); removed > 0 {
			s.logger.Info().
				Str("user", strings.ToLower(user)).
				Int("count", removed).
				Msg("Invalidated user cache entries")
		}
		return
	}

	if removed := s.store.InvalidateUserScoped(); removed > 0 {
		s.logger.Info().
			Int("count", removed).
			Msg("Invalidated user-scoped cache entries")
	}
}

// handleHealth reports process status and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(s.startTime)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"upstream":       s.upstream.BaseURL(),
		"cache_entries":  s.store.Size(),
		"uptime_seconds": int(uptime.Seconds()),
		"uptime_human":   humanUptime(uptime),
	})
}

// handleStats reports hit/miss statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleClear removes cache entries. Optional body: {"type": "..."} clears
// one type, {"user": "0x..."} clears one account's entries, anything else
// (including no or unparsable body) clears everything.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var payload map[string]any
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		// Unparsable bodies fall through to clear-all.
		_ = json.Unmarshal(body, &payload)
	}

	if t, ok := payload["type"].(string); ok {
		count := s.store.ClearByType(t)
		s.logger.Info().Str("type", t).Int("count", count).Msg("Cleared cache by type")
		writeJSON(w, http.StatusOK, map[string]any{
			"cleared": count,
			"filter":  map[string]string{"type": t},
		})
		return
	}

	if u, ok := payload["user"].(string); ok {
		count := s.store.InvalidateUser(u)
		s.logger.Info().Str("user", strings.ToLower(u)).Int("count", count).Msg("Cleared cache by user")
		writeJSON(w, http.StatusOK, map[string]any{
			"cleared": "user_entries",
			"filter":  map[string]string{"user": u},
		})
		return
	}

	count := s.store.ClearAll()
	s.logger.Info().Int("count", count).Msg("Cleared entire cache")
	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": count,
		"filter":  "all",
	})
}

// upstreamErrorMessage maps a network failure to the client-visible message.
func upstreamErrorMessage(err error) string {
	if errors.Is(err, upstream.ErrTimeout) {
		return "Upstream timeout"
	}
	return "Upstream connection failed"
}

// humanUptime renders a duration as "XhYmZs".
func humanUptime(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
