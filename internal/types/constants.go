package types

const (
	ContextUserKey      = "user"
	ContextLoggerKey    = "logger"
	ContextRequestIDKey = "request_id"

	RequestIDHeader = "X-Request-ID"

	// DateLayout is the wire and storage format of project and task dates.
	DateLayout = "2006-01-02"
)
