package cache

import (
	"testing"
	"time"
)

func TestTTLFor(t *testing.T) {
	tests := []struct {
		infoType string
		want     time.Duration
	}{
		{"meta", 300 * time.Second},
		{"spotMeta", 300 * time.Second},
		{"perpDexs", 300 * time.Second},
		{"userAbstraction", 300 * time.Second},
		{"userDexAbstraction", 300 * time.Second},
		{"allMids", 5 * time.Second},
		{"l2Book", 3 * time.Second},
		{"clearinghouseState", 2 * time.Second},
		{"spotClearinghouseState", 2 * time.Second},
		{"openOrders", 2 * time.Second},
		{"frontendOpenOrders", 2 * time.Second},
		{"metaAndAssetCtxs", 10 * time.Second},
		{"spotMetaAndAssetCtxs", 10 * time.Second},
		{"userFills", 5 * time.Second},
		{"userFillsByTime", 5 * time.Second},
		{"fundingHistory", 30 * time.Second},
		{"candleSnapshot", 10 * time.Second},
		{"recentTrades", 5 * time.Second},
		{"somethingNew", DefaultTTL},
		{"unknown", DefaultTTL},
		{"", DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.infoType, func(t *testing.T) {
			if got := TTLFor(tt.infoType); got != tt.want {
				t.Errorf("TTLFor(%q) = %v, want %v", tt.infoType, got, tt.want)
			}
		})
	}
}

func TestUserScoped(t *testing.T) {
	scoped := []string{
		"clearinghouseState",
		"spotClearinghouseState",
		"openOrders",
		"frontendOpenOrders",
		"userFills",
		"userFillsByTime",
	}
	for _, infoType := range scoped {
		if !UserScoped(infoType) {
			t.Errorf("Expected %q to be user-scoped", infoType)
		}
	}

	shared := []string{"meta", "allMids", "l2Book", "fundingHistory", "unknown"}
	for _, infoType := range shared {
		if UserScoped(infoType) {
			t.Errorf("Expected %q not to be user-scoped", infoType)
		}
	}
}
