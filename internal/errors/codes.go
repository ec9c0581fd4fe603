// Package errors provides structured error handling for the trainer.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Config errors are fatal at startup.
	CodeConfigMissingAPIKey   Code = "CONFIG_MISSING_API_KEY"
	CodeConfigInvalidUI       Code = "CONFIG_INVALID_UI"
	CodeConfigInvalidDBPath   Code = "CONFIG_INVALID_DB_PATH"
	CodeConfigInvalidProvider Code = "CONFIG_INVALID_PROVIDER"
	CodeConfigInvalidScenario Code = "CONFIG_INVALID_SCENARIO"

	// Provider errors are retryable and leave the session where it was.
	CodeProviderAuth        Code = "PROVIDER_AUTH"
	CodeProviderRateLimited Code = "PROVIDER_RATE_LIMITED"
	CodeProviderUnavailable Code = "PROVIDER_UNAVAILABLE"
	CodeProviderEmptyReply  Code = "PROVIDER_EMPTY_REPLY"

	// Session/turn errors.
	CodeSessionEmptyID      Code = "SESSION_EMPTY_ID"
	CodeTurnEmptySpeaker    Code = "TURN_EMPTY_SPEAKER"
	CodeTurnSequenceGap     Code = "TURN_SEQUENCE_GAP"
	CodeParticipantNotFound Code = "PARTICIPANT_NOT_FOUND"

	// Storage errors mean the turn was not committed.
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeNotFound           Code = "NOT_FOUND"
)

// recoverable marks codes the front end may retry without restarting.
var recoverable = map[Code]bool{
	CodeProviderAuth:        true,
	CodeProviderRateLimited: true,
	CodeProviderUnavailable: true,
	CodeProviderEmptyReply:  true,
}

// IsRecoverable reports whether the code describes a provider-class failure
// that leaves the session advanceable by retrying the same participant.
func IsRecoverable(code Code) bool {
	return recoverable[code]
}
