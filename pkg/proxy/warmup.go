package proxy

import (
	"context"
	"encoding/json"

	"github.com/hyperliquid-tools/hl-proxy/pkg/cache"
)

// warmupPayloads are the heavy, slow-changing requests pre-fetched at
// startup so the first callers don't pay for them.
var warmupPayloads = []map[string]any{
	{"type": "meta"},
	{"type": "spotMeta"},
	{"type": "perpDexs"},
	{"type": "allMids"},
}

// Warmup seeds the cache by fetching each warm-up payload directly from the
// upstream. Every failure is logged and skipped; warm-up never aborts
// startup.
func (s *Server) Warmup(ctx context.Context) {
	for _, payload := range warmupPayloads {
		infoType, _ := payload["type"].(string)

		body, err := json.Marshal(payload)
		if err != nil {
			s.logger.Warn().Err(err).Str("type", infoType).Msg("Warmup payload encode failed")
			continue
		}

		resp, err := s.upstream.Info(ctx, body)
		if err != nil {
			s.logger.Warn().Err(err).Str("type", infoType).Msg("Warmup fetch failed")
			continue
		}
		if !resp.OK() {
			s.logger.Warn().
				Int("status", resp.StatusCode).
				Str("type", infoType).
				Msg("Warmup fetch returned non-200")
			continue
		}

		key, err := cache.CanonicalKeyFromPayload(payload)
		if err != nil {
			s.logger.Warn().Err(err).Str("type", infoType).Msg("Warmup key generation failed")
			continue
		}

		ttl := cache.TTLFor(infoType)
		s.store.Put(key, resp.Body, ttl, "")
		s.logger.Info().Str("type", infoType).Dur("ttl", ttl).Msg("Warmed cache")
	}
}
