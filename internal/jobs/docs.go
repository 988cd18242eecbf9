// Package jobs provides scheduled background tasks for the order
// coordination service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic maintenance the request path defers.
//
// # Available Jobs
//
// 1. PaymentRematchJob - Runs every 30 seconds to replay parked payment
// confirmations whose order was not yet visible when the webhook arrived
// 2. StaleAckReminderJob - Runs every minute to flag orders whose assigned
// pharmacy has left the acknowledgement pending past the configured threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(paymentUoWFactory, confirmPayment, db, maxAttempts, ackThreshold, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The rematch job uses the cron expression "*/30 * * * * *" and the reminder
// job "0 * * * * *". Both cadences are deliberate: rematching quickly closes
// the window where a paid order sits unconfirmed, while acknowledgement
// chasing is a human-paced follow-up.
package jobs
