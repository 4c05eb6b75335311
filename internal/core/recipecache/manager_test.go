package recipecache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/infrastructure/config"
)

func testConfig() *config.CacheConfig {
	return &config.CacheConfig{
		Enabled:         true,
		MaxSize:         3,
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	}
}

func testRecipes(title string) []recipe.Recipe {
	return []recipe.Recipe{{ID: 1, Title: title}}
}

func TestManagerDisabled(t *testing.T) {
	t.Parallel()

	m := NewManager(&config.CacheConfig{Enabled: false})
	if m != nil {
		t.Error("disabled cache should return nil manager")
	}
}

func TestManagerPutGet(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	if err := m.Put(ctx, "k1", testRecipes("Omelette")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	if entry.Recipes[0].Title != "Omelette" {
		t.Errorf("got title %q, want Omelette", entry.Recipes[0].Title)
	}
	if entry.AccessCount != 1 {
		t.Errorf("AccessCount = %d, want 1", entry.AccessCount)
	}

	stats := m.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, size 1", stats)
	}
}

func TestManagerExpiry(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.TTL = 10 * time.Millisecond
	m := NewManager(cfg)
	defer m.Close()
	ctx := context.Background()

	if err := m.Put(ctx, "k1", testRecipes("Omelette")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok := m.Get(ctx, "k1"); ok {
		t.Error("expired entry should be a miss")
	}
	if stats := m.Stats(); stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestManagerCapacityEvictsOldest(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig()) // MaxSize 3
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := m.Put(ctx, fmt.Sprintf("k%d", i), testRecipes("r")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		// 確保 CreatedAt 嚴格遞增
		time.Sleep(2 * time.Millisecond)
	}

	if stats := m.Stats(); stats.Size != 3 {
		t.Fatalf("Size = %d, want 3", stats.Size)
	}
	if _, ok := m.Get(ctx, "k0"); ok {
		t.Error("oldest entry k0 should have been evicted")
	}
	for _, key := range []string{"k1", "k2", "k3"} {
		if _, ok := m.Get(ctx, key); !ok {
			t.Errorf("entry %s should still be cached", key)
		}
	}
}

func TestManagerGetReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	if err := m.Put(ctx, "k1", testRecipes("Omelette")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	entry.Recipes[0].Title = "Corrupted"

	again, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("second Get should hit")
	}
	if again.Recipes[0].Title != "Omelette" {
		t.Errorf("cached payload was mutated through returned entry: got %q", again.Recipes[0].Title)
	}
}

func TestManagerPutOverwrites(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	if err := m.Put(ctx, "k1", testRecipes("First")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := m.Put(ctx, "k1", testRecipes("Second")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("Get after overwrite should hit")
	}
	if entry.Recipes[0].Title != "Second" {
		t.Errorf("got title %q, want Second", entry.Recipes[0].Title)
	}
}
