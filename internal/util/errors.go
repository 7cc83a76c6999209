package util

import "errors"

var (
	ErrTriviaUnavailable  = errors.New("trivia service unavailable")
	ErrTriviaRateLimited  = errors.New("trivia service rate limit reached")
	ErrTriviaBadResponse  = errors.New("trivia service returned an invalid response")
	ErrInvalidQueryInt    = errors.New("query parameter is not an integer")
	ErrSnapshotStore      = errors.New("map snapshot could not be stored")
	ErrServiceNotReady    = errors.New("http service not ready")
	ErrShellUnavailable   = errors.New("desktop shell unavailable")
	ErrStorageUnsupported = errors.New("storage type not supported")
)
