// SPDX-License-Identifier: MIT
// Package matrix - shape validators shared by callers.
//
// Validators never mutate their inputs and never panic; they return the
// sentinels from errors.go wrapped with the validator name.

package matrix

import (
	"fmt"
	"reflect"
)

// validatorErrorf tags a sentinel with the validator that detected it.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil rejects nil interfaces and typed-nil pointers.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	// A typed nil (*Dense)(nil) stored in the interface is still nil storage.
	if v := reflect.ValueOf(m); v.Kind() == reflect.Ptr && v.IsNil() {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols > 0).
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if not square or empty.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() || m.Rows() <= 0 {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}
