package jobs

const TaskPurgeExpired = "cache:purge_expired"

type PurgeExpiredPayload struct {
	// DryRun counts purgeable rows without deleting them.
	DryRun bool `json:"dry_run,omitempty"`
}
