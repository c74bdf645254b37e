package core

// Error codes for protocol and application errors. All of them are replied
// to the offending client; none of them closes its connection.
const (
	ErrCodeRoomNotFound  = "room_not_found"
	ErrCodeNotInRoom     = "not_in_room"
	ErrCodeAlreadyInRoom = "already_in_room"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeMergeFailed   = "merge_failed"
	ErrCodeUnknownType   = "unknown_type"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
