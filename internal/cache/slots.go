// Package cache holds the read-through cache of computed slot lists.
// The database stays the source of truth; every mutation of a barber's
// calendar bumps a per-barber version so stale entries are never read.
package cache

import (
	"context"
	"time"
)

type Entry struct {
	Slots  []time.Time `json:"slots"`
	Closed bool        `json:"closed"`
}

// SlotCache lookups return the barber's version observed at read time. A
// computed list must be stored with Set under that same version, so a
// mutation that lands between the miss and the write leaves the entry
// unreachable instead of serving it as current.
type SlotCache interface {
	Get(ctx context.Context, barberID uint, date string, durationMin int) (e *Entry, version int64, ok bool)
	Set(ctx context.Context, barberID uint, version int64, date string, durationMin int, e Entry)
	Invalidate(ctx context.Context, barberID uint)
}

// NoVersion is returned by Get when the version could not be read; Set
// ignores it.
const NoVersion int64 = -1

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, uint, string, int) (*Entry, int64, bool) {
	return nil, NoVersion, false
}

func (NoopCache) Set(context.Context, uint, int64, string, int, Entry) {}

func (NoopCache) Invalidate(context.Context, uint) {}
