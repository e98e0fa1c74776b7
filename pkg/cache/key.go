package cache

import (
	"encoding/json"
	"fmt"
)

// CanonicalKey generates a deterministic cache key from a raw /info request
// body. The body is decoded and re-encoded with encoding/json, which sorts
// object keys and drops insignificant whitespace, so two payloads that differ
// only in key order or formatting map to the same key.
//
// Example:
//
//	{"user": "0xabc", "type": "openOrders"} -> {"type":"openOrders","user":"0xabc"}
func CanonicalKey(raw []byte) (string, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	return CanonicalKeyFromPayload(payload)
}

// CanonicalKeyFromPayload generates a cache key from an already-decoded
// payload.
func CanonicalKeyFromPayload(payload map[string]any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(data), nil
}

// keyType decodes a cache key back into its payload and returns the `type`
// field. Keys are canonical JSON, so the decode only fails on corrupted
// input; in that case the empty string is returned.
func keyType(key string) string {
	var payload struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(key), &payload); err != nil {
		return ""
	}
	return payload.Type
}
