package mcpsrv

import (
	"context"
	"log"
	"time"

	"github.com/qyinm/bustui/types"
)

// StartCacheJanitor clears the source's detail cache every interval until
// ctx is done. It does nothing when interval is not positive or the source
// has no cache.
func StartCacheJanitor(ctx context.Context, source types.MovieSource, interval time.Duration, logger *log.Logger) bool {
	clearable, ok := source.(cacheClearSource)
	if !ok || interval <= 0 {
		return false
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				clearable.ClearCache()
				if logger != nil {
					logger.Printf("mcp: detail cache cleared")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return true
}
