package shell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInput is the largest command line accepted, in bytes.
const DefaultMaxInput = 512

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitize enforces a size limit, validates UTF-8 and strips control
// characters (ANSI escapes, NUL, BEL...) so typed input cannot corrupt the
// terminal it is echoed to. Tabs survive as spaces. limit <= 0 uses DefaultMaxInput.
func Sanitize(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInput
	}
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
