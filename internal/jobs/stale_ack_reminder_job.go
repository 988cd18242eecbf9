package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StaleAckReminderJob surfaces orders whose assigned pharmacy has left the
// acknowledgement pending past a configured threshold, so dispatch staff can
// chase or reassign them.
type StaleAckReminderJob struct {
	db        *gorm.DB
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleAckReminderJob creates a job that checks for stale pending
// acknowledgements every minute.
func NewStaleAckReminderJob(db *gorm.DB, threshold time.Duration, logger *slog.Logger) *StaleAckReminderJob {
	return &StaleAckReminderJob{
		db:        db,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_ack_reminder_job"),
	}
}

// Start begins the reminder job on its one minute cadence.
func (j *StaleAckReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale ack check failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale ack reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *StaleAckReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale ack reminder job stopped")
}

func (j *StaleAckReminderJob) run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.threshold)

	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT tracking_code, pharmacy_id, updated_at
		FROM orders
		WHERE ack_status = 'pending' AND updated_at < ?
		ORDER BY updated_at`, cutoff).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			trackingCode string
			pharmacyID   string
			updatedAt    time.Time
		)
		if err := rows.Scan(&trackingCode, &pharmacyID, &updatedAt); err != nil {
			return err
		}
		j.logger.WarnContext(ctx, "Order acknowledgement still pending",
			"tracking_code", trackingCode,
			"pharmacy_id", pharmacyID,
			"pending_for", time.Since(updatedAt).Round(time.Second).String())
	}
	return rows.Err()
}
