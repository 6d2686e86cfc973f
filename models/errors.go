package models

// Error taxonomy shared by services and handlers. Each failure is scoped
// to a single request; handlers translate the type into an HTTP status.

// ErrorValidation marks malformed or constraint-violating input.
type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

// ErrorUnauthorized marks a request without a valid identity.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

// ErrorForbidden marks an access-control denial.
type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

// ErrorNotFound marks an absent referenced entity.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorConflict marks a concurrent write collision on a unique key
// (slug, revision number, vote pair). The whole logical operation may be
// retried; individual sub-steps may not.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorInternalServer wraps unexpected failures.
type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }
