package http

const (
	KeyHeaderContentType       = "Content-Type"
	KeyHeaderRequestID         = "X-Request-Id"
	ValueHeaderApplicationJson = "application/json"
)

const (
	StatusSuccess              = "success"
	StatusFailed               = "failed"
	MessageInternalServerError = "Internal Server Error"
)
