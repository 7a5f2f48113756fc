package domain

const (
	// Sources
	SourceSpaceX = "spacex"
	SourceAPOD   = "apod"
	SourceEPIC   = "epic"

	// Run Statuses
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"

	// Redis Key Patterns
	RedisKeyDelivered = "space:%s:delivered"
	RedisKeyFetched   = "space:%s:fetched"

	// Message Types
	MsgTypePhotoDelivered = "photo_delivered"
)
