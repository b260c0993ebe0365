package jobs

import (
	"context"
	"time"

	"camrental-backend/internal/logger"
	"camrental-backend/internal/metrics"
)

// ScheduleOverdueReturns moves every active rental that is past its end
// date and delivered into RETURN_SCHEDULED. The sweep is a single
// statement and only matches DELIVERED, so running it twice in a night
// touches nothing the second time.
func (jr *JobRunner) ScheduleOverdueReturns() {
	jr.runWithRecovery("ScheduleOverdueReturns", func() {
		ctx := context.Background()

		swept, err := jr.store.ScheduleOverdueReturns(ctx, time.Now().UTC())
		if err != nil {
			logger.ErrorContext(ctx, "Failed to schedule overdue returns", "error", err)
			return
		}

		metrics.ReturnsScheduled(len(swept))
		logger.Info("Scheduled overdue returns", "count", len(swept))

		for _, rental := range swept {
			logger.Debug("Scheduled return for rental",
				"rental_id", rental.ID,
				"camera_id", rental.CameraID,
				"customer_id", rental.CustomerID,
				"end_date", rental.EndDate.Format("2006-01-02"))
		}
	})
}
