package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDisabledCache(t *testing.T) {
	c, err := New("unused:6379", false, time.Minute)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Enabled() {
		t.Fatalf("expected disabled cache")
	}

	ctx := context.Background()
	if err := c.StoreSettings(ctx, "classic", map[string]string{"a": "1"}); err != nil {
		t.Fatalf("store on disabled cache: %v", err)
	}
	if _, err := c.Settings(ctx, "classic"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.InvalidateSettings(ctx, "classic"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatalf("nil cache must report disabled")
	}
	if _, err := c.Settings(context.Background(), "x"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestSettingsKey(t *testing.T) {
	if got := settingsKey("classic"); got != "theme:settings:classic" {
		t.Fatalf("unexpected key %q", got)
	}
}
