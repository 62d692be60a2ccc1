package jobs

// Job names, kept in one place for reference from monitoring.
const (
	JobCounterSweep = "upload.counter_sweep"
	JobUsageReport  = "storage.usage_report"
)

// Schedules.
const (
	// counter windows are 60s, so a sweep each minute keeps the map at
	// roughly one window of clients
	CounterSweepInterval = "1m"
	CronUsageReport      = "0 8 * * *"
)
