// Package jobs provides scheduled background tasks for the pricing and
// workflow service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field):
//
//  1. PricingHealthJob - checks the pricing service every 30 seconds and on start
//  2. QuoteSessionSweepJob - closes idle quote sessions every minute
//
// # Usage
//
//	jobManager := jobs.NewJobManager(healthMonitor, sessionRegistry, jobs.Config{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A job that fails to start stops the jobs already running.
package jobs
