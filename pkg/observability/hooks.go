// Package observability provides hooks for instrumenting layout storage and
// the layout service HTTP surface without binding the libraries to a metrics
// backend. Hooks are registered once at startup by main; libraries emit
// events through the package-level accessors. All defaults are no-ops.
package observability

import (
	"context"
	"sync"
	"time"
)

// StorageHooks receives events from layout storage operations.
type StorageHooks interface {
	// OnLoad records a layout fetch. found is false for missing rooms.
	OnLoad(ctx context.Context, room string, found bool, duration time.Duration)

	// OnSave records a layout upsert with the stored item count.
	OnSave(ctx context.Context, room string, items int, duration time.Duration, err error)

	// OnDelete records a layout removal.
	OnDelete(ctx context.Context, room string, err error)
}

// HTTPHooks receives events from the layout API client.
type HTTPHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure.
	OnError(ctx context.Context, method, path string, err error)
}

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnLoad(context.Context, string, bool, time.Duration)       {}
func (NoopStorageHooks) OnSave(context.Context, string, int, time.Duration, error) {}
func (NoopStorageHooks) OnDelete(context.Context, string, error)                   {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

var (
	storageHooks StorageHooks = NoopStorageHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetStorageHooks registers custom storage hooks. Call once at startup
// before any storage operations.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Call once at startup before any
// client requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults. Primarily for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storageHooks = NoopStorageHooks{}
	httpHooks = NoopHTTPHooks{}
}
