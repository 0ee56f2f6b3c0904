package resource

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownResource      = errors.New("unknown resource")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrNotTradable          = errors.New("resource not traded on the market")
	ErrResourceExists       = errors.New("resource already exists")
)

// UnknownResourceError is returned for keys that were never registered
type UnknownResourceError struct {
	Key Key
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("unknown resource: %s", e.Key)
}

func (e *UnknownResourceError) Is(target error) bool {
	return target == ErrUnknownResource
}

// InvalidAmountError is returned for non-positive or non-finite quantities
type InvalidAmountError struct {
	Key    Key
	Amount float64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount for %s: %g", e.Key, e.Amount)
}

func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount
}

// InsufficientResourceError is returned when a debit exceeds the stock
type InsufficientResourceError struct {
	Key       Key
	Required  float64
	Available float64
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("insufficient %s: need %g, have %g", e.Key, e.Required, e.Available)
}

func (e *InsufficientResourceError) Is(target error) bool {
	return target == ErrInsufficientResource
}

// NotTradableError is returned when the market has no price for a key
type NotTradableError struct {
	Key Key
}

func (e *NotTradableError) Error() string {
	return fmt.Sprintf("%s is not available in the market", e.Key)
}

func (e *NotTradableError) Is(target error) bool {
	return target == ErrNotTradable
}
