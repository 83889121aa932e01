// internal/membership/errors.go
package membership

// ErrorCode is the closed set of failure kinds the domain service surfaces.
// The HTTP layer translates a code into a status with a plain lookup; no
// other error shape crosses the service boundary on a domain failure.
type ErrorCode string

const (
	CodeMembershipNotFound           ErrorCode = "MEMBERSHIP_NOT_FOUND"
	CodeDuplicatedMembershipRegister ErrorCode = "DUPLICATED_MEMBERSHIP_REGISTER"
	CodeNotMembershipOwner           ErrorCode = "NOT_MEMBERSHIP_OWNER"
)

// Error is a tagged domain failure with a fixed message per code.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrMembershipNotFound = &Error{
		Code:    CodeMembershipNotFound,
		Message: "membership not found",
	}
	ErrDuplicatedMembershipRegister = &Error{
		Code:    CodeDuplicatedMembershipRegister,
		Message: "duplicated membership register request",
	}
	ErrNotMembershipOwner = &Error{
		Code:    CodeNotMembershipOwner,
		Message: "not an owner of this membership",
	}
)
