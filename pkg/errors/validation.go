package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// terminalNameRegex matches gnuplot terminal names such as "wxt" or "pngcairo".
var terminalNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// ValidateTerminalName validates a terminal name before it is spliced into a
// gnuplot command line.
func ValidateTerminalName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTerminal, "terminal name cannot be empty")
	}
	if len(name) > 32 {
		return New(ErrCodeInvalidTerminal, "terminal name too long (max 32 characters)")
	}
	if !terminalNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTerminal, "invalid terminal name: %q", name)
	}
	return nil
}

// ValidatePrefix validates an output file prefix (data, script and export base name).
//
// Validation rules:
//   - Prefix cannot be empty
//   - Maximum length of 200 characters
//   - No control characters
//   - No quote characters, which would break the generated script
//   - No path separators; the output directory is configured separately
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidPath, "file prefix cannot be empty")
	}

	const maxPrefixLength = 200
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidPath, "file prefix too long (max %d characters)", maxPrefixLength)
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file prefix contains invalid control characters")
		}
	}

	if strings.ContainsAny(prefix, `'"`) {
		return New(ErrCodeInvalidPath, "file prefix cannot contain quotes")
	}

	if strings.ContainsAny(prefix, "/\\") {
		return New(ErrCodeInvalidPath, "file prefix cannot contain path separators")
	}

	if prefix == "." || prefix == ".." {
		return New(ErrCodeInvalidPath, "file prefix cannot be %q", prefix)
	}

	return nil
}

// ValidateLabel validates a free-text label (axis label, title, legend entry).
// Labels are written inside quoted gnuplot strings, so newlines are rejected;
// gnuplot's own "\n" escape still works.
func ValidateLabel(label string) error {
	if strings.ContainsAny(label, "\r\n\x00") {
		return New(ErrCodeInvalidInput, "label cannot contain line breaks: %q", label)
	}
	return nil
}
