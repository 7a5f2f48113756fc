package domain

import "errors"

var (
	// ErrUpstream covers non-2xx responses and missing fields in upstream JSON.
	ErrUpstream = errors.New("upstream error")
	// ErrIO covers local file read/write failures.
	ErrIO = errors.New("io error")
	// ErrDelivery covers failures of the outbound send.
	ErrDelivery = errors.New("delivery error")
)
