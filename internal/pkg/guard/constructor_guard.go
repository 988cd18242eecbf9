// Package guard provides the ConstructorGuard defensive pattern used by
// domain objects and commands to ensure they are only created through their
// designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so validation of a zero value always fails
// with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through
// its constructor or as a zero value. The guard holds an internal flag that
// only constructor functions set, so any zero-value instance fails Validate.
//
// Example usage:
//
//	type ConfirmPaymentCommand struct {
//	    reference string
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewConfirmPaymentCommand(reference string) (ConfirmPaymentCommand, error) {
//	    if reference == "" {
//	        return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("reference")
//	    }
//	    return ConfirmPaymentCommand{
//	        reference: reference,
//	        guard:     guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c ConfirmPaymentCommand) Validate() error {
//	    return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the embedding object as
// properly constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
