package errors

import "errors"

var (
	// board, thread or reply absent
	ErrNotFound = errors.New("not found")
	// delete password mismatch; text is shown to clients as is
	ErrIncorrectPassword = errors.New("incorrect password")
	// board document changed between load and save
	ErrConflict = errors.New("board was modified concurrently, try again")
	// board stored without a thread collection
	ErrCorruptBoard = errors.New("board has no thread collection")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
