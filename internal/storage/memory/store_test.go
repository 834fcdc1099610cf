package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/yndnr/questkeep-go/internal/storage"
)

func TestStore_BasicOperations(t *testing.T) {
	store := New()
	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		if err := store.Set(ctx, "k", []byte("v")); err != nil {
			t.Fatal(err)
		}
		got, err := store.Get(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "v" {
			t.Errorf("Get = %q, want %q", got, "v")
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		if !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "k"); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Get(ctx, "k"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, "k"); err != nil {
			t.Errorf("deleting a missing key should not fail: %v", err)
		}
	})
}

func TestStore_ValuesAreCopied(t *testing.T) {
	store := New()
	ctx := context.Background()

	in := []byte("abc")
	if err := store.Set(ctx, "k", in); err != nil {
		t.Fatal(err)
	}
	in[0] = 'x'

	out, _ := store.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("stored value changed through caller buffer: %q", out)
	}
	out[0] = 'y'

	again, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value changed through returned buffer: %q", again)
	}
}

func TestStore_Scan(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, k := range []string{"home.b", "home.a", "tone", "home.c"} {
		if err := store.Set(ctx, k, []byte(k)); err != nil {
			t.Fatal(err)
		}
	}

	var keys []string
	err := store.Scan(ctx, "home.", func(key string, value []byte) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"home.a", "home.b", "home.c"}
	if len(keys) != len(want) {
		t.Fatalf("Scan keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	count := 0
	_ = store.Scan(ctx, "", func(string, []byte) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Scan stopped after %d, want 2", count)
	}
}

func TestStore_Close(t *testing.T) {
	store := New()
	ctx := context.Background()
	_ = store.Set(ctx, "k", []byte("v"))

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
	if err := store.Set(ctx, "k", nil); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}
