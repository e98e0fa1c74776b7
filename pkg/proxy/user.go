package proxy

import "net/http"

// userFields is the ordered list of payload fields checked for the acting
// account address.
var userFields = []string{"user", "address"}

// userHeader is the header fallback the trading CLIs can send when the
// payload itself carries no address.
const userHeader = "X-HL-Address"

// extractUser returns the acting account address from the payload fields in
// order, then from the request header. Returns "" when none is present.
// Callers index and invalidate case-insensitively, so no lower-casing here.
func extractUser(payload map[string]any, header http.Header) string {
	for _, field := range userFields {
		if v, ok := payload[field].(string); ok && v != "" {
			return v
		}
	}
	return header.Get(userHeader)
}
