package obs

import (
	"context"
	"time"

	"flightplan-service/internal/platform/logging"
)

// Time measures one operation and logs its duration when the returned func
// runs. Pass the address of the caller's named error so failures are logged
// with the error attached:
//
//	defer obs.Time(ctx, "export.WritePlan")(&err)
//
// The logger comes from the context; without one the measurement is dropped.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		log := logging.LoggerFromContext(ctx)
		if log == nil {
			return
		}

		fields := []logging.Field{
			logging.String("op", name),
			logging.Int("dur_ms", int(time.Since(start).Milliseconds())),
		}
		if errp != nil && *errp != nil {
			log.Error(ctx, "operation failed", append(fields, logging.Err(*errp))...)
			return
		}
		log.Debug(ctx, "operation done", fields...)
	}
}
