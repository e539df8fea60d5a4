package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the schema registry, the encoder and the predictor.
// Callers compare with errors.Is; typed errors below carry the details.
var (
	ErrSchemaLoad         = errors.New("schema load failed")
	ErrModelLoad          = errors.New("model load failed")
	ErrUnknownLocation    = errors.New("unknown location")
	ErrOutOfRange         = errors.New("value out of range")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrScoring            = errors.New("scoring failed")
	ErrPredictionNotFound = errors.New("prediction not found")
)

// UnknownLocationError is returned when a query names a location the schema has no column for.
type UnknownLocationError struct {
	Location string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location %q", e.Location)
}

func (e *UnknownLocationError) Is(target error) bool {
	return target == ErrUnknownLocation
}

// OutOfRangeError names the offending field and the bound it violated.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s = %g is outside the allowed range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
