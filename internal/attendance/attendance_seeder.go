package attendance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunDailySeeder keeps the current day seeded. Seeding is idempotent, so the
// loop simply re-seeds whenever the calendar date changes (and once at
// startup to cover a mid-day restart).
func RunDailySeeder(ctx context.Context, svc Service, logger *zap.Logger, checkInterval time.Duration) {
	if checkInterval <= 0 {
		checkInterval = 15 * time.Minute
	}

	log := logger.Named("attendance.seeder")

	seed := func(day time.Time) {
		if _, err := svc.SeedDay(ctx, day); err != nil {
			log.Error("daily seed failed", zap.String("date", day.Format("2006-01-02")), zap.Error(err))
		}
	}

	lastSeeded := time.Now().UTC().Truncate(24 * time.Hour)
	seed(lastSeeded)

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	log.Info("daily seeder started", zap.Duration("check_interval", checkInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("daily seeder stopped")
			return
		case <-ticker.C:
			today := time.Now().UTC().Truncate(24 * time.Hour)
			if today.After(lastSeeded) {
				seed(today)
				lastSeeded = today
			}
		}
	}
}
