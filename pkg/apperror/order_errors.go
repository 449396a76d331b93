package apperror

import (
	"errors"
	"fmt"
)

// DuplicateOrderError signals that an order number already exists. The
// caller chooses between the explicit update path and retrying with a new
// number; this is never treated as a generic store error.
type DuplicateOrderError struct {
	OrderNo string
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("order %s already exists", e.OrderNo)
}

// NewDuplicateOrderError creates a duplicate-order error for the given number
func NewDuplicateOrderError(orderNo string) *DuplicateOrderError {
	return &DuplicateOrderError{OrderNo: orderNo}
}

// IsDuplicateOrder reports whether the error is a duplicate-order conflict
func IsDuplicateOrder(err error) bool {
	var dup *DuplicateOrderError
	return errors.As(err, &dup)
}

// PartialWriteError is returned when a later step of the order save failed
// after an earlier step committed. When compensation succeeded the stored
// state is clean and only the original step error matters; when
// compensation itself failed the order exists as an orphaned partial write
// and an operator has to intervene.
type PartialWriteError struct {
	Step            string // step that failed: "items", "payment"
	Err             error  // the original step failure
	CompensationErr error  // nil when rollback succeeded
}

func (e *PartialWriteError) Error() string {
	if e.CompensationErr != nil {
		return fmt.Sprintf("order save failed at %s and rollback failed, stored state is inconsistent: %v (rollback: %v)",
			e.Step, e.Err, e.CompensationErr)
	}
	return fmt.Sprintf("order save failed at %s, earlier writes rolled back: %v", e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// Orphaned reports whether compensation failed, leaving partial rows behind
func (e *PartialWriteError) Orphaned() bool {
	return e.CompensationErr != nil
}
