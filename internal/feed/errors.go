package feed

import "errors"

var (
	// ErrInvalidDate reports a target date that is not an 8-digit YYYYMMDD
	// string naming a real calendar date.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrFollowRetrieval reports a failed follow page fetch; the cause is
	// wrapped alongside it.
	ErrFollowRetrieval = errors.New("failed to retrieve follows")

	// ErrFeedRetrieval reports a failed author feed page fetch; the cause is
	// wrapped alongside it.
	ErrFeedRetrieval = errors.New("failed to retrieve author feed")
)
