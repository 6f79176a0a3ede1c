package resource

import (
	"errors"
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(kindSave, "save")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok || val != "save" {
		t.Fatalf("Get = %v, %v", val, ok)
	}

	if _, ok = table.GetTyped(h, kindSave); !ok {
		t.Fatal("GetTyped with correct kind failed")
	}
	if _, ok = table.GetTyped(h, kindMeta); ok {
		t.Fatal("GetTyped with wrong kind should fail")
	}

	val, ok = table.Remove(h)
	if !ok || val != "save" {
		t.Fatalf("Remove = %v, %v", val, ok)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_GetAs(t *testing.T) {
	table := NewTable()
	h := table.Insert(kindSave, []byte("EU4txt"))

	data, ok := GetAs[[]byte](table, h, kindSave)
	if !ok || string(data) != "EU4txt" {
		t.Fatalf("GetAs = %q, %v", data, ok)
	}
	if _, ok := GetAs[string](table, h, kindSave); ok {
		t.Fatal("GetAs with wrong Go type should fail")
	}
	if _, ok := GetAs[[]byte](table, h, kindMeta); ok {
		t.Fatal("GetAs with wrong kind should fail")
	}
}

func TestTable_Release(t *testing.T) {
	table := NewTable()
	save := table.Insert(kindSave, "save")

	if !table.Borrow(save) {
		t.Fatal("Borrow failed")
	}
	if _, err := table.Release(save, kindSave); !errors.Is(err, ErrOutstandingBorrow) {
		t.Fatalf("expected ErrOutstandingBorrow, got %v", err)
	}
	if _, err := table.Release(save, kindMeta); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}

	table.ReturnBorrow(save)
	if table.Borrows(save) != 0 {
		t.Fatal("borrow should be returned")
	}

	val, err := table.Release(save, kindSave)
	if err != nil || val != "save" {
		t.Fatalf("Release = %v, %v", val, err)
	}
	if _, err := table.Release(save, kindSave); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(kindSave, "save")
	table.Borrow(h)
	table.ReturnBorrow(h)
	table.Release(h, kindSave)

	want := []EventType{EventCreated, EventBorrowed, EventBorrowReturned, EventReleased}
	if len(obs.events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(obs.events))
	}
	for i, typ := range want {
		if obs.events[i].Type != typ {
			t.Errorf("event %d = %v, want %v", i, obs.events[i].Type, typ)
		}
		if obs.events[i].Handle != h || obs.events[i].Kind != kindSave {
			t.Errorf("event %d has handle %d kind %d", i, obs.events[i].Handle, obs.events[i].Kind)
		}
	}

	table.Unsubscribe(obs)
	table.Insert(kindSave, "other")
	if len(obs.events) != len(want) {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()

	table.Insert(kindSave, "a")
	table.Insert(kindMeta, "b")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if h := table.Insert(kindSave, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(kindSave, d)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}
