package resource

import (
	"errors"
	"sync"
	"testing"
)

const (
	kindSave Kind = iota + 1
	kindMeta
)

func TestLocalBackend_Basic(t *testing.T) {
	b := NewLocalBackend()

	handle, err := b.Create(kindSave, "save bytes")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := b.Get(handle)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "save bytes" {
		t.Fatalf("Expected 'save bytes', got %v", val)
	}

	kind, ok := b.Kind(handle)
	if !ok || kind != kindSave {
		t.Fatalf("Kind = %v, %v", kind, ok)
	}

	val, ok = b.Drop(handle)
	if !ok {
		t.Fatal("Drop failed")
	}
	if val != "save bytes" {
		t.Fatalf("Expected 'save bytes', got %v", val)
	}

	if _, ok = b.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
}

func TestLocalBackend_Borrow(t *testing.T) {
	b := NewLocalBackend()

	handle, _ := b.Create(kindSave, "save")

	if !b.Borrow(handle) {
		t.Fatal("Borrow failed")
	}
	if b.Borrows(handle) != 1 {
		t.Fatalf("Borrows = %d, want 1", b.Borrows(handle))
	}

	if _, ok := b.Drop(handle); ok {
		t.Fatal("Drop should fail with outstanding borrow")
	}

	if !b.ReturnBorrow(handle) {
		t.Fatal("ReturnBorrow failed")
	}
	if b.ReturnBorrow(handle) {
		t.Fatal("ReturnBorrow without borrow should fail")
	}

	if _, ok := b.Drop(handle); !ok {
		t.Fatal("Drop should succeed after returning borrow")
	}
}

func TestLocalBackend_ReleaseChecksKind(t *testing.T) {
	b := NewLocalBackend()

	handle, _ := b.Create(kindMeta, "meta")

	if _, err := b.release(handle, kindSave, true); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
	if _, ok := b.Get(handle); !ok {
		t.Fatal("wrong-kind release must leave the entry alive")
	}
	if _, err := b.release(handle, kindMeta, true); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if _, err := b.release(handle, kindMeta, true); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("second release should report ErrInvalidHandle, got %v", err)
	}
}

func TestLocalBackend_HandleReuse(t *testing.T) {
	b := NewLocalBackend()

	h1, _ := b.Create(kindSave, 1)
	h2, _ := b.Create(kindSave, 2)
	h3, _ := b.Create(kindSave, 3)

	b.Drop(h2)

	h4, _ := b.Create(kindMeta, 4)
	if h4 != h2 {
		t.Fatalf("expected freed slot %d to be reused, got %d", h2, h4)
	}

	for _, h := range []Handle{h1, h3, h4} {
		if _, ok := b.Get(h); !ok {
			t.Fatalf("handle %d should be valid", h)
		}
	}
	if kind, _ := b.Kind(h4); kind != kindMeta {
		t.Fatalf("reused slot should carry the new kind, got %v", kind)
	}
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestLocalBackend_Close(t *testing.T) {
	b := NewLocalBackend()

	d := &dropCounter{}
	h, _ := b.Create(kindSave, d)
	b.Borrow(h)

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Close should drop borrowed values too, dropped %d", d.count)
	}

	_, err := b.Create(kindSave, "late")
	if !errors.Is(err, ErrClosed) {
		t.Fatal("Expected ErrClosed after Close")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
}

func TestLocalBackend_Concurrent(t *testing.T) {
	b := NewLocalBackend()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			h, _ := b.Create(kindSave, id)
			b.Borrow(h)
			b.ReturnBorrow(h)
			b.Drop(h)
		}(i)
	}

	wg.Wait()

	if b.Len() != 0 {
		t.Fatalf("Expected Len() == 0, got %d", b.Len())
	}
}

func TestLocalBackend_Each(t *testing.T) {
	b := NewLocalBackend()

	b.Create(kindSave, "a")
	b.Create(kindMeta, "b")
	b.Create(kindSave, "c")

	count := 0
	b.Each(func(h Handle, kind Kind, value any) bool {
		count++
		return true
	})
	if count != 3 {
		t.Fatalf("Expected to iterate over 3 items, got %d", count)
	}

	count = 0
	b.Each(func(h Handle, kind Kind, value any) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Expected to iterate over 1 item (early term), got %d", count)
	}
}

func TestLocalBackend_InvalidHandle(t *testing.T) {
	b := NewLocalBackend()

	if _, ok := b.Get(0); ok {
		t.Fatal("Handle 0 should be invalid")
	}
	if _, ok := b.Kind(0); ok {
		t.Fatal("Handle 0 should have no kind")
	}
	if b.Borrow(0) {
		t.Fatal("Handle 0 should fail Borrow")
	}
	if b.ReturnBorrow(0) {
		t.Fatal("Handle 0 should fail ReturnBorrow")
	}
	if _, ok := b.Drop(0); ok {
		t.Fatal("Handle 0 should fail Drop")
	}
	if _, ok := b.Get(999); ok {
		t.Fatal("Non-existent handle should be invalid")
	}
}
