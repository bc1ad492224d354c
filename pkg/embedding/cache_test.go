package embedding_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vaultry/triage/pkg/embedding"
)

func TestCacheKeying(t *testing.T) {
	t.Run("texts sharing a 100-char prefix share an entry", func(t *testing.T) {
		cache := embedding.NewCache(10)
		prefix := strings.Repeat("a", 100)

		cache.Put(prefix+" first document body", []float64{1, 2})

		vec, ok := cache.Get(prefix + " completely different body")
		if !ok {
			t.Fatal("Get = miss, want hit on shared prefix")
		}
		if vec[0] != 1 || vec[1] != 2 {
			t.Errorf("vec = %v, want [1 2]", vec)
		}
		if cache.Len() != 1 {
			t.Errorf("Len = %d, want 1", cache.Len())
		}
	})

	t.Run("short texts key on their full content", func(t *testing.T) {
		cache := embedding.NewCache(10)

		cache.Put("short-a", []float64{1})
		cache.Put("short-b", []float64{2})

		if cache.Len() != 2 {
			t.Errorf("Len = %d, want 2", cache.Len())
		}
		if _, ok := cache.Get("short-c"); ok {
			t.Error("Get = hit for unseen text")
		}
	})

	t.Run("rewriting a key does not grow the cache", func(t *testing.T) {
		cache := embedding.NewCache(10)

		cache.Put("doc", []float64{1})
		cache.Put("doc", []float64{2})

		if cache.Len() != 1 {
			t.Errorf("Len = %d, want 1", cache.Len())
		}
		vec, _ := cache.Get("doc")
		if vec[0] != 2 {
			t.Errorf("vec = %v, want the latest write", vec)
		}
	})
}

func TestCacheEviction(t *testing.T) {
	t.Run("exceeding max drops the oldest half", func(t *testing.T) {
		cache := embedding.NewCache(4)

		for i := 0; i < 5; i++ {
			cache.Put(fmt.Sprintf("doc-%d", i), []float64{float64(i)})
		}

		if cache.Len() != 3 {
			t.Fatalf("Len = %d, want 3", cache.Len())
		}
		for _, key := range []string{"doc-0", "doc-1"} {
			if _, ok := cache.Get(key); ok {
				t.Errorf("Get(%s) = hit, want evicted", key)
			}
		}
		for _, key := range []string{"doc-2", "doc-3", "doc-4"} {
			if _, ok := cache.Get(key); !ok {
				t.Errorf("Get(%s) = miss, want kept", key)
			}
		}
	})

	t.Run("non-positive max falls back to the default", func(t *testing.T) {
		cache := embedding.NewCache(0)

		for i := 0; i <= embedding.DefaultCacheSize; i++ {
			cache.Put(fmt.Sprintf("doc-%d", i), nil)
		}

		want := embedding.DefaultCacheSize/2 + 1
		if cache.Len() != want {
			t.Errorf("Len = %d, want %d", cache.Len(), want)
		}
	})
}
