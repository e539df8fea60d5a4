package constants

const (
	APIPrefix     = "/api/v1"
	TraceIDHeader = "X-Trace-ID"
)
