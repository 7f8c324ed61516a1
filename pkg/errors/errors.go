package errors

// Definition is a business error code with its default message.
type Definition struct {
	Code    string
	Message string
}

func (d Definition) Error() string {
	return d.Message
}

// Authentication errors.
var (
	Unauthorized       = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidCredentials = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	InvalidWorkerID    = Definition{Code: "INVALID_WORKER_ID", Message: "Invalid worker ID format"}
	WorkerNotFound     = Definition{Code: "WORKER_NOT_FOUND", Message: "Worker not found"}
	EmailAlreadyTaken  = Definition{Code: "EMAIL_ALREADY_TAKEN", Message: "Email already registered"}
	EmployerOnly       = Definition{Code: "EMPLOYER_ONLY", Message: "Employer capability required"}
)

// Time clock errors.
var (
	GeofenceViolation    = Definition{Code: "GEOFENCE_VIOLATION", Message: "Outside the office geofence"}
	LocationUnavailable  = Definition{Code: "LOCATION_UNAVAILABLE", Message: "Could not determine location"}
	ClockInAlreadyActive = Definition{Code: "CLOCK_IN_ALREADY_ACTIVE", Message: "Already clocked in"}
	NotClockedIn         = Definition{Code: "NOT_CLOCKED_IN", Message: "No active session"}
	NotOnBreak           = Definition{Code: "NOT_ON_BREAK", Message: "No active break"}
	ConcurrentUpdate     = Definition{Code: "CONCURRENT_UPDATE", Message: "Another clock operation is in progress"}
)

// Task errors.
var (
	TaskNotFound    = Definition{Code: "TASK_NOT_FOUND", Message: "Task not found"}
	ValidationError = Definition{Code: "VALIDATION_ERROR", Message: "Validation failed"}
)

// Transport errors.
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, slow down"}
)

// Lookup resolves an error code back to its Definition.
var Lookup = map[string]Definition{
	Unauthorized.Code:         Unauthorized,
	InvalidCredentials.Code:   InvalidCredentials,
	InvalidWorkerID.Code:      InvalidWorkerID,
	WorkerNotFound.Code:       WorkerNotFound,
	EmailAlreadyTaken.Code:    EmailAlreadyTaken,
	EmployerOnly.Code:         EmployerOnly,
	GeofenceViolation.Code:    GeofenceViolation,
	LocationUnavailable.Code:  LocationUnavailable,
	ClockInAlreadyActive.Code: ClockInAlreadyActive,
	NotClockedIn.Code:         NotClockedIn,
	NotOnBreak.Code:           NotOnBreak,
	ConcurrentUpdate.Code:     ConcurrentUpdate,
	TaskNotFound.Code:         TaskNotFound,
	ValidationError.Code:      ValidationError,
	TooManyRequests.Code:      TooManyRequests,
}

// Get returns the Definition for a code, or a generic one if unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// WithField returns a VALIDATION_ERROR definition naming the offending field.
func WithField(field string) Definition {
	return Definition{
		Code:    ValidationError.Code,
		Message: "Validation failed for field: " + field,
	}
}
