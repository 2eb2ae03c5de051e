package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidConfig       failure.ErrorCode = "InvalidConfig"

	// Storefront feed.
	FetchFailed        failure.ErrorCode = "FetchFailed"        // request could not be built or sent
	UnexpectedStatus   failure.ErrorCode = "UnexpectedStatus"   // upstream answered with non-2xx
	InvalidFeed        failure.ErrorCode = "InvalidFeed"        // body is not the expected envelope
	InvalidItem        failure.ErrorCode = "InvalidItem"        // qualifying item misses a required field
	AssetNotFound      failure.ErrorCode = "AssetNotFound"      // no such name in the latest snapshot
	SnapshotNotReady   failure.ErrorCode = "SnapshotNotReady"   // no successful cycle yet
	NotificationFailed failure.ErrorCode = "NotificationFailed" // a notifier could not deliver
	SecretUnavailable  failure.ErrorCode = "SecretUnavailable"
)
