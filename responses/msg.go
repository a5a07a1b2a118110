package responses

type Message struct {
	Type    string `json:"type"` // "error", "success"
	Message string `json:"message"`
	Code    int    `json:"code"` // application-level logic code
}

// Application-level codes of error Messages
const (
	CodeNone         = 0
	CodeInvalidInput = 1000
	CodeDuplicate    = 1001
	CodeNotFound     = 1004
	CodeUnauthorized = 1401
	CodeLocked       = 1423
	CodeThrottled    = 1429
	CodeInternal     = 1500
)
