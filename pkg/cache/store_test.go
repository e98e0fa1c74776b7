package cache

import (
	"testing"
	"time"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore()
	body := []byte(`{"BTC":"100000"}`)

	store.Put(`{"type":"allMids"}`, body, 5*time.Second, "")

	got, ok := store.Get(`{"type":"allMids"}`, "allMids")
	if !ok {
		t.Fatal("Expected cache hit for fresh entry")
	}
	if string(got) != string(body) {
		t.Errorf("Body mismatch: got %s, want %s", got, body)
	}
}

func TestStore_Get_Miss(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get(`{"type":"meta"}`, "meta"); ok {
		t.Error("Expected miss for never-stored key")
	}

	stats := store.Snapshot()
	if stats.ByType["meta"].Misses != 1 {
		t.Errorf("Expected 1 miss for meta, got %d", stats.ByType["meta"].Misses)
	}
	if stats.ByType["meta"].Hits != 0 {
		t.Errorf("Expected 0 hits for meta, got %d", stats.ByType["meta"].Hits)
	}
}

func TestStore_Get_ExpiredDeletedOnTouch(t *testing.T) {
	store := NewStore()
	store.Put(`{"type":"l2Book"}`, []byte("{}"), -1*time.Second, "")

	if store.Size() != 1 {
		t.Fatalf("Expected size 1 after put, got %d", store.Size())
	}

	if _, ok := store.Get(`{"type":"l2Book"}`, "l2Book"); ok {
		t.Error("Expected miss for expired entry")
	}
	if store.Size() != 0 {
		t.Errorf("Expected expired entry to be deleted on touch, size = %d", store.Size())
	}
}

func TestStore_Put_Overwrites(t *testing.T) {
	store := NewStore()
	key := `{"type":"allMids"}`

	store.Put(key, []byte("first"), 5*time.Second, "")
	store.Put(key, []byte("second"), 5*time.Second, "")

	got, ok := store.Get(key, "allMids")
	if !ok {
		t.Fatal("Expected hit")
	}
	if string(got) != "second" {
		t.Errorf("Expected last write to win, got %s", got)
	}
	if store.Size() != 1 {
		t.Errorf("Expected 1 entry after overwrite, got %d", store.Size())
	}
}

func TestStore_HitMissAccounting(t *testing.T) {
	store := NewStore()
	key := `{"type":"openOrders","user":"0xabc"}`

	for i := 0; i < 3; i++ {
		store.Get(key, "openOrders")
	}

	stats := store.Snapshot()
	if stats.ByType["openOrders"].Misses != 3 {
		t.Errorf("Expected 3 misses, got %d", stats.ByType["openOrders"].Misses)
	}

	store.Put(key, []byte("[]"), 2*time.Second, "0xabc")
	store.Get(key, "openOrders")

	stats = store.Snapshot()
	if stats.ByType["openOrders"].Hits != 1 {
		t.Errorf("Expected exactly 1 hit after put, got %d", stats.ByType["openOrders"].Hits)
	}
	if stats.TotalHits != 1 || stats.TotalMisses != 3 {
		t.Errorf("Expected totals 1/3, got %d/%d", stats.TotalHits, stats.TotalMisses)
	}
	if stats.HitRate != "25.0%" {
		t.Errorf("Expected hit rate 25.0%%, got %s", stats.HitRate)
	}
}

func TestStore_Snapshot_EmptyHitRate(t *testing.T) {
	store := NewStore()
	if rate := store.Snapshot().HitRate; rate != "0.0%" {
		t.Errorf("Expected 0.0%% with no lookups, got %s", rate)
	}
}

func TestStore_InvalidateUser(t *testing.T) {
	store := NewStore()

	store.Put(`{"type":"openOrders","user":"0xaaa"}`, []byte("a1"), time.Minute, "0xAAA")
	store.Put(`{"type":"userFills","user":"0xaaa"}`, []byte("a2"), time.Minute, "0xaaa")
	store.Put(`{"type":"openOrders","user":"0xbbb"}`, []byte("b1"), time.Minute, "0xbbb")

	removed := store.InvalidateUser("0xAaA")
	if removed != 2 {
		t.Errorf("Expected 2 entries removed, got %d", removed)
	}

	if _, ok := store.Get(`{"type":"openOrders","user":"0xaaa"}`, "openOrders"); ok {
		t.Error("Expected user A entry to be invalidated")
	}
	if _, ok := store.Get(`{"type":"openOrders","user":"0xbbb"}`, "openOrders"); !ok {
		t.Error("Expected user B entry to survive")
	}
}

func TestStore_InvalidateUser_Unknown(t *testing.T) {
	store := NewStore()
	if removed := store.InvalidateUser("0xnobody"); removed != 0 {
		t.Errorf("Expected no-op for unknown user, got %d", removed)
	}
}

func TestStore_InvalidateUser_Idempotent(t *testing.T) {
	store := NewStore()
	store.Put(`{"type":"openOrders","user":"0xaaa"}`, []byte("a"), time.Minute, "0xaaa")

	if removed := store.InvalidateUser("0xaaa"); removed != 1 {
		t.Fatalf("Expected 1 removed, got %d", removed)
	}
	if removed := store.InvalidateUser("0xaaa"); removed != 0 {
		t.Errorf("Expected second invalidation to be a no-op, got %d", removed)
	}
}

func TestStore_InvalidateUserScoped(t *testing.T) {
	store := NewStore()

	store.Put(`{"type":"clearinghouseState","user":"0xaaa"}`, []byte("s"), time.Minute, "")
	store.Put(`{"type":"openOrders","user":"0xbbb"}`, []byte("o"), time.Minute, "")
	store.Put(`{"type":"meta"}`, []byte("m"), time.Minute, "")
	store.Put(`{"type":"allMids"}`, []byte("p"), time.Minute, "")

	removed := store.InvalidateUserScoped()
	if removed != 2 {
		t.Errorf("Expected 2 user-scoped entries removed, got %d", removed)
	}

	if _, ok := store.Get(`{"type":"meta"}`, "meta"); !ok {
		t.Error("Expected shared meta entry to survive fallback invalidation")
	}
	if _, ok := store.Get(`{"type":"allMids"}`, "allMids"); !ok {
		t.Error("Expected shared allMids entry to survive fallback invalidation")
	}
	if _, ok := store.Get(`{"type":"clearinghouseState","user":"0xaaa"}`, "clearinghouseState"); ok {
		t.Error("Expected clearinghouseState entry to be removed")
	}
}

func TestStore_ClearByType(t *testing.T) {
	store := NewStore()

	store.Put(`{"type":"meta"}`, []byte("m"), time.Minute, "")
	store.Put(`{"coin":"BTC","type":"l2Book"}`, []byte("b1"), time.Minute, "")
	store.Put(`{"coin":"ETH","type":"l2Book"}`, []byte("b2"), time.Minute, "")

	if count := store.ClearByType("l2Book"); count != 2 {
		t.Errorf("Expected 2 l2Book entries cleared, got %d", count)
	}
	if _, ok := store.Get(`{"type":"meta"}`, "meta"); !ok {
		t.Error("Expected meta entry to survive clear-by-type")
	}
}

func TestStore_ClearAll(t *testing.T) {
	store := NewStore()

	store.Put(`{"type":"meta"}`, []byte("m"), time.Minute, "")
	store.Put(`{"type":"openOrders","user":"0xaaa"}`, []byte("o"), time.Minute, "0xaaa")

	if count := store.ClearAll(); count != 2 {
		t.Errorf("Expected 2 entries cleared, got %d", count)
	}
	if store.Size() != 0 {
		t.Errorf("Expected empty store, got %d entries", store.Size())
	}
	// User index must be gone too.
	if removed := store.InvalidateUser("0xaaa"); removed != 0 {
		t.Errorf("Expected user index cleared, invalidation removed %d", removed)
	}
}

func TestStore_SweepExpired(t *testing.T) {
	store := NewStore()

	store.Put(`{"coin":"BTC","type":"l2Book"}`, []byte("b"), -10*time.Millisecond, "")
	store.Put(`{"type":"allMids"}`, []byte("p"), -10*time.Millisecond, "")
	store.Put(`{"type":"meta"}`, []byte("m"), time.Minute, "")

	if swept := store.SweepExpired(); swept != 2 {
		t.Errorf("Expected 2 entries swept, got %d", swept)
	}
	if store.Size() != 1 {
		t.Errorf("Expected 1 entry after sweep, got %d", store.Size())
	}
	if _, ok := store.Get(`{"type":"meta"}`, "meta"); !ok {
		t.Error("Expected fresh entry to survive sweep")
	}
}

func TestStore_SweepPrunesUserIndex(t *testing.T) {
	store := NewStore()

	store.Put(`{"type":"openOrders","user":"0xaaa"}`, []byte("o"), -10*time.Millisecond, "0xaaa")

	if swept := store.SweepExpired(); swept != 1 {
		t.Fatalf("Expected 1 entry swept, got %d", swept)
	}
	// The index reference must be gone so invalidation sees nothing.
	if removed := store.InvalidateUser("0xaaa"); removed != 0 {
		t.Errorf("Expected pruned index for swept user, invalidation removed %d", removed)
	}
}

func TestStore_UserIndexCaseInsensitive(t *testing.T) {
	store := NewStore()

	store.Put(`{"type":"openOrders","user":"0xAbCd"}`, []byte("o"), time.Minute, "0xAbCd")

	if removed := store.InvalidateUser("0xABCD"); removed != 1 {
		t.Errorf("Expected case-insensitive invalidation to remove 1, got %d", removed)
	}
}
