package retention

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// RunPurgeUnconfirmedUsers deletes accounts that were never confirmed within purgeAfterDays of
// registering. Call periodically (the worker schedules it daily). purgeAfterDays 0 = no-op.
func RunPurgeUnconfirmedUsers(ctx context.Context, userRepo ports.UserRepository, purgeAfterDays int) (purged int, err error) {
	if purgeAfterDays <= 0 {
		return 0, nil
	}
	threshold := time.Now().Add(-time.Duration(purgeAfterDays) * 24 * time.Hour)
	ids, err := userRepo.ListUnconfirmedBefore(ctx, threshold)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if e := userRepo.Delete(ctx, id); e != nil {
			return purged, e
		}
		purged++
	}
	return purged, nil
}
