package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func setupSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "todorpg-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"sqlite": setupSQLite(t),
		"memory": NewMemoryKV(),
	}
}

func TestKVPutGetOverwrite(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := kv.Put(ctx, "k", []byte("one")); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := kv.Put(ctx, "k", []byte("two")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := kv.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != "two" {
				t.Fatalf("last write should win, got %q", got)
			}
			if err := kv.Put(ctx, "", []byte("x")); err == nil {
				t.Fatal("expected error for empty key")
			}
		})
	}
}

func TestKVDeleteAndKeys(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"todorpg.daily", "todorpg.longterm", "other", "todorpg_x"} {
				if err := kv.Put(ctx, k, []byte(k)); err != nil {
					t.Fatalf("put %s: %v", k, err)
				}
			}
			keys, err := kv.Keys(ctx, "todorpg.")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"todorpg.daily", "todorpg.longterm"}
			if !reflect.DeepEqual(keys, want) {
				t.Fatalf("keys = %v, want %v", keys, want)
			}

			if err := kv.Delete(ctx, "other"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := kv.Delete(ctx, "other"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("second delete: expected ErrNotFound, got %v", err)
			}
			all, err := kv.Keys(ctx, "")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("expected 3 keys, got %v", all)
			}
		})
	}
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()
	got, err := kv.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("after reopen got %q, %v", got, err)
	}
}

func TestSQLiteKVRebuildSchemaEmptiesStore(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "rebuild.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()
	ctx := context.Background()
	if err := kv.Put(ctx, KeyDaily, []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.RebuildSchema(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if _, err := kv.Get(ctx, KeyDaily); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after rebuild, got %v", err)
	}
	if err := kv.Put(ctx, KeyDaily, []byte("{}")); err != nil {
		t.Fatalf("put after rebuild: %v", err)
	}
}
