// Package validation provides request input validation helpers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	mobileRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// HostelBlocks is the fixed set of residential blocks on campus.
var HostelBlocks = []string{
	"A Block", "B Block", "C Block", "D Block",
	"E Block", "F Block", "G Block", "H Block",
	"J Block", "K Block", "L Block", "M Block",
	"N Block", "P Block", "Q Block", "R Block",
	"S Block", "T Block",
}

// Validator collects field validation errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// First returns one error message, for clients that only show a single one.
func (v *Validator) First() string {
	for _, msg := range v.Errors {
		return msg
	}
	return ""
}

// AddError adds an error to the validator.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not empty.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Email validates email format.
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Mobile validates mobile number format.
func (v *Validator) Mobile(field, mobile string) {
	v.Check(mobileRegex.MatchString(mobile), field, "must be a valid mobile number")
}

// MaxLength checks that a string has at most n characters.
func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// NonNegative checks that a number is not below zero.
func (v *Validator) NonNegative(field string, value float64) {
	v.Check(value >= 0, field, "must not be negative")
}

// OneOf checks that a value is in the allowed set.
func (v *Validator) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// HostelBlock checks that a value names a known block.
func (v *Validator) HostelBlock(field, value string) {
	v.OneOf(field, value, HostelBlocks...)
}
