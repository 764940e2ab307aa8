// Package profiles provides the profile document model and the resource migration.
package profiles

import "fmt"

// LoadError represents an error reading the profiles file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseError represents content that is not valid JSON
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// StructuralError represents a value with an unexpected shape.
// Profile and Resource are -1 when the error is not tied to one.
type StructuralError struct {
	Profile  int
	Resource int
	Path     string
	Message  string
}

func (e *StructuralError) Error() string {
	switch {
	case e.Profile < 0:
		return fmt.Sprintf("structural error: %s", e.Message)
	case e.Resource < 0:
		return fmt.Sprintf("structural error: profile %d: %s: %s", e.Profile, e.Path, e.Message)
	default:
		return fmt.Sprintf("structural error: profile %d: %s[%d]: %s", e.Profile, e.Path, e.Resource, e.Message)
	}
}

// SaveError represents an error writing the profiles file or its backup
type SaveError struct {
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("save error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("save error: %s", e.Message)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}

// WeightRangeError is returned when a WeightSource yields a value outside [MinWeight, MaxWeight]
type WeightRangeError struct {
	Weight int
}

func (e *WeightRangeError) Error() string {
	return fmt.Sprintf("weight %d out of range [%d, %d]", e.Weight, MinWeight, MaxWeight)
}
