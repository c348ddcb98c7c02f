package phone

import (
	"errors"
	"regexp"
)

// ErrInvalidPhoneNumber is returned when a phone number does not match any of
// the accepted Ethiopian formats.
var ErrInvalidPhoneNumber = errors.New("invalid phone number format, use 09XXXXXXXX or +251XXXXXXXXX")

var (
	localPattern         = regexp.MustCompile(`^09\d{8}$`)
	internationalPattern = regexp.MustCompile(`^\+251\d{9}$`)
)

// Normalize converts an Ethiopian phone number into its E.164 representation.
// Both accepted formats (09XXXXXXXX and +251XXXXXXXXX) collapse to the single
// canonical form +251XXXXXXXXX; normalizing an already canonical number
// returns it unchanged.
func Normalize(phoneNumber string) (string, error) {
	switch {
	case internationalPattern.MatchString(phoneNumber):
		return phoneNumber, nil
	case localPattern.MatchString(phoneNumber):
		// Replace the leading 0 with the country code.
		return "+251" + phoneNumber[1:], nil
	default:
		return "", ErrInvalidPhoneNumber
	}
}
