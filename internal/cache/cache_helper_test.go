package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "test:"), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := helper.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := helper.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a" || got.Count != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestHelper(t)

	var dest string
	if err := helper.Get(context.Background(), "missing", &dest); err != ErrCacheNotFound {
		t.Fatalf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "test:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set on nil client should be a no-op, got %v", err)
	}

	var dest string
	if err := helper.Get(ctx, "k", &dest); err != ErrCacheNotAvailable {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"list:all", "list:page1", "other"} {
		if err := helper.SetString(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if mr.Exists("test:list:all") || mr.Exists("test:list:page1") {
		t.Error("list keys should be invalidated")
	}
	if !mr.Exists("test:other") {
		t.Error("unrelated key should survive")
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []string{"row"}, nil
	}

	var first, second []string
	if err := helper.CacheOrExecute(ctx, "rows", &first, time.Minute, fetch); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := helper.CacheOrExecute(ctx, "rows", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second: %v", err)
	}

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if len(second) != 1 || second[0] != "row" {
		t.Errorf("second read got %v", second)
	}
}
