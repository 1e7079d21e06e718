package domain

// Status is the state of a repository operation as surfaced to callers.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

// Result is what every repository operation produces. Streamed operations
// emit a Loading value first and then exactly one Success or Error value.
// No lower-level failure escapes the repository as a raw error; it is always
// folded into an Error result.
type Result[T any] struct {
	Status    Status
	Data      T
	Message   string
	FromCache bool
	Offline   bool
	Err       error
}

// Loading returns a transient in-progress result.
func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

// Success returns a terminal successful result.
func Success[T any](data T, message string) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data, Message: message}
}

// CacheSuccess returns a successful result served from the local cache
// instead of the remote store. Soft degradation, not an error.
func CacheSuccess[T any](data T, message string) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data, Message: message, FromCache: true}
}

// Failure returns a terminal error result.
func Failure[T any](message string, err error) Result[T] {
	return Result[T]{Status: StatusError, Message: message, Err: err}
}

// OfflineFailure returns an error result flagged as caused by being offline,
// so the UI can show an offline affordance instead of a generic error.
func OfflineFailure[T any](message string) Result[T] {
	return Result[T]{Status: StatusError, Message: message, Offline: true}
}

func (r Result[T]) IsLoading() bool {
	return r.Status == StatusLoading
}

func (r Result[T]) IsSuccess() bool {
	return r.Status == StatusSuccess
}

func (r Result[T]) IsError() bool {
	return r.Status == StatusError
}
