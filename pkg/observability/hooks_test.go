package observability

import (
	"context"
	"testing"
	"time"
)

type countingStorageHooks struct {
	loads, saves, deletes int
}

func (h *countingStorageHooks) OnLoad(context.Context, string, bool, time.Duration) { h.loads++ }
func (h *countingStorageHooks) OnSave(context.Context, string, int, time.Duration, error) {
	h.saves++
}
func (h *countingStorageHooks) OnDelete(context.Context, string, error) { h.deletes++ }

func TestStorageHooksRegistration(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingStorageHooks{}
	SetStorageHooks(h)

	Storage().OnLoad(context.Background(), "main", true, time.Millisecond)
	Storage().OnSave(context.Background(), "main", 3, time.Millisecond, nil)
	Storage().OnDelete(context.Background(), "main", nil)

	if h.loads != 1 || h.saves != 1 || h.deletes != 1 {
		t.Errorf("hook counts = %d/%d/%d, want 1/1/1", h.loads, h.saves, h.deletes)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingStorageHooks{}
	SetStorageHooks(h)
	SetStorageHooks(nil)

	Storage().OnLoad(context.Background(), "main", true, 0)
	if h.loads != 1 {
		t.Error("nil registration replaced the active hooks")
	}
}

func TestResetRestoresNoops(t *testing.T) {
	h := &countingStorageHooks{}
	SetStorageHooks(h)
	Reset()

	Storage().OnLoad(context.Background(), "main", true, 0)
	if h.loads != 0 {
		t.Error("Reset did not restore the no-op hooks")
	}
}
