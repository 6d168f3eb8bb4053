package shared

// EventType names a domain event written to the outbox.
type EventType string

const (
	EventJournalCreated EventType = "journal.created"
	EventJournalUpdated EventType = "journal.updated"
	EventJournalDeleted EventType = "journal.deleted"
	EventJournalsPurged EventType = "journal.purged"

	EventOrderCreated EventType = "order.created"
	EventOrderUpdated EventType = "order.updated"
	EventOrderDeleted EventType = "order.deleted"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
