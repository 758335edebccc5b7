package resolve

// ErrorCode classifies a resolution-level failure. These are expected,
// caller-recoverable outcomes carried as data; structural faults travel
// as ordinary errors instead.
type ErrorCode string

const (
	ErrNone           ErrorCode = ""
	ErrCardNotFound   ErrorCode = "CARD_NOT_FOUND"
	ErrTargetNotAlive ErrorCode = "TARGET_NOT_ALIVE"
	ErrInvalidTarget  ErrorCode = "INVALID_TARGET"
	ErrInvalidState   ErrorCode = "INVALID_STATE"
)

// Result is the outcome of one resolver execution.
type Result struct {
	Succeeded  bool
	Code       ErrorCode
	MessageKey string
}

var successResult = Result{Succeeded: true}

// Success returns the canonical successful result.
func Success() Result { return successResult }

// Failure returns a failed result with an error code and message key.
func Failure(code ErrorCode, messageKey string) Result {
	return Result{Succeeded: false, Code: code, MessageKey: messageKey}
}
