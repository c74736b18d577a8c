// Package account validates Hive account names.
package account

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/openhive-network/denser-sub002/internal/locale"
)

// Length bounds for a full account name.
const (
	MinLength = 3
	MaxLength = 16

	minSegmentLength = 3
)

// Sentinel errors returned by Validate.
var (
	ErrWrongLength  = errors.New("account name should be between 3 and 16 characters long")
	ErrBadActor     = errors.New("account name is on the bad actor list")
	ErrWrongSegment = errors.New("account name contains a bad segment")
)

var (
	segmentChars = regexp.MustCompile(`^[a-z0-9-]*$`)
	segmentStart = regexp.MustCompile(`^[a-z]`)
	segmentEnd   = regexp.MustCompile(`[a-z0-9]$`)
)

// Validate checks name against the chain's account name rules. It returns
// nil for a valid name, otherwise an error wrapping one of the sentinels.
func Validate(name string) error {
	if len(name) < MinLength || len(name) > MaxLength {
		return fmt.Errorf("%w: got %d", ErrWrongLength, len(name))
	}
	if IsBadActor(name) {
		return fmt.Errorf("%w: %q", ErrBadActor, name)
	}
	for _, label := range strings.Split(name, ".") {
		switch {
		case !segmentStart.MatchString(label):
			return fmt.Errorf("%w: %q must start with a letter", ErrWrongSegment, label)
		case !segmentChars.MatchString(label):
			return fmt.Errorf("%w: %q may only contain lowercase letters, digits and dashes", ErrWrongSegment, label)
		case strings.Contains(label, "--"):
			return fmt.Errorf("%w: %q has consecutive dashes", ErrWrongSegment, label)
		case !segmentEnd.MatchString(label):
			return fmt.Errorf("%w: %q must end with a letter or digit", ErrWrongSegment, label)
		case len(label) < minSegmentLength:
			return fmt.Errorf("%w: %q is shorter than %d characters", ErrWrongSegment, label, minSegmentLength)
		}
	}
	return nil
}

// IsValid is shorthand for Validate(name) == nil.
func IsValid(name string) bool {
	return Validate(name) == nil
}

// IsBadActor reports whether name is a known impersonation account.
func IsBadActor(name string) bool {
	_, ok := badActors[name]
	return ok
}

// Reason returns the localized reason name is invalid, or "" when it is
// valid. lang is a BCP 47 tag; unknown languages fall back to English.
func Reason(name, lang string) string {
	err := Validate(name)
	if err == nil {
		return ""
	}
	msgs := locale.For(lang)
	switch {
	case errors.Is(err, ErrWrongLength):
		return msgs.AccountNameWrongLength
	case errors.Is(err, ErrBadActor):
		return msgs.AccountNameBadActor
	default:
		return msgs.AccountNameWrongSegment
	}
}
