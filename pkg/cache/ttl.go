package cache

import "time"

// DefaultTTL is used for info types missing from the TTL table.
const DefaultTTL = 10 * time.Second

// ttlTable maps info request types to how long their responses stay fresh.
// The values follow the upstream API's weight model: expensive, slow-moving
// metadata is held long; prices and account state are held for seconds only.
var ttlTable = map[string]time.Duration{
	// Heavy metadata - rarely changes
	"meta":               300 * time.Second,
	"spotMeta":           300 * time.Second,
	"perpDexs":           300 * time.Second,
	"userAbstraction":    300 * time.Second,
	"userDexAbstraction": 300 * time.Second,

	// Prices - need freshness
	"allMids": 5 * time.Second,
	"l2Book":  3 * time.Second,

	// User state - changes after trades
	"clearinghouseState":     2 * time.Second,
	"spotClearinghouseState": 2 * time.Second,
	"openOrders":             2 * time.Second,
	"frontendOpenOrders":     2 * time.Second,

	// Aggregated data
	"metaAndAssetCtxs":     10 * time.Second,
	"spotMetaAndAssetCtxs": 10 * time.Second,

	// User history
	"userFills":       5 * time.Second,
	"userFillsByTime": 5 * time.Second,

	// Reference data
	"fundingHistory": 30 * time.Second,
	"candleSnapshot": 10 * time.Second,
	"recentTrades":   5 * time.Second,
}

// userScopedTypes marks the info types that reflect a single account's state.
// These are invalidated wholesale after a successful exchange action whose
// acting address could not be determined.
var userScopedTypes = map[string]struct{}{
	"clearinghouseState":     {},
	"spotClearinghouseState": {},
	"openOrders":             {},
	"frontendOpenOrders":     {},
	"userFills":              {},
	"userFillsByTime":        {},
}

// TTLFor returns the freshness window for an info type.
// Unknown types get DefaultTTL.
func TTLFor(infoType string) time.Duration {
	if ttl, ok := ttlTable[infoType]; ok {
		return ttl
	}
	return DefaultTTL
}

// UserScoped reports whether an info type carries account-specific state.
func UserScoped(infoType string) bool {
	_, ok := userScopedTypes[infoType]
	return ok
}
