package enum

import (
	"context"
	"log/slog"
	"sync"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// CombinedEnumerator chains sources, for example several paths plus a bucket,
// so that identical documents are linted once.
type CombinedEnumerator struct {
	enumerators []Enumerator
	logger      *slog.Logger

	mu         sync.Mutex
	seen       map[types.BlobID]struct{}
	duplicates int
}

// NewCombinedEnumerator runs enumerators in order. A document whose BlobID
// was already yielded by any of them is dropped.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// WithLogger sets where dropped duplicates are reported.
func (c *CombinedEnumerator) WithLogger(logger *slog.Logger) *CombinedEnumerator {
	c.logger = logger
	return c
}

// Enumerate implements Enumerator. Child enumerators may call back concurrently.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	c.mu.Lock()
	c.seen = make(map[types.BlobID]struct{})
	c.duplicates = 0
	c.mu.Unlock()

	for _, e := range c.enumerators {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := e.Enumerate(ctx, func(content []byte, blobID types.BlobID, prov types.Provenance) error {
			if !c.first(blobID) {
				if c.logger != nil {
					c.logger.Debug("skipping duplicate document", "path", prov.Path(), "blob", blobID.Short())
				}
				return nil
			}
			return callback(content, blobID, prov)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *CombinedEnumerator) first(id types.BlobID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[id]; ok {
		c.duplicates++
		return false
	}
	c.seen[id] = struct{}{}
	return true
}

// Duplicates returns how many documents the last Enumerate dropped.
func (c *CombinedEnumerator) Duplicates() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duplicates
}
