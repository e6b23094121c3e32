package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDimensions validates grid dimensions.
// Rows and columns must both be positive; levels may be zero (unused) or
// positive for three-dimensional grids.
func ValidateDimensions(rows, cols, levels int) error {
	if rows < 1 {
		return New(ErrCodeInvalidInput, "rows must be positive, got %d", rows)
	}
	if cols < 1 {
		return New(ErrCodeInvalidInput, "columns must be positive, got %d", cols)
	}
	if levels < 0 {
		return New(ErrCodeInvalidInput, "levels cannot be negative, got %d", levels)
	}
	return nil
}

// ValidateBias validates a coin-flip bias probability.
func ValidateBias(bias float64) error {
	if bias < 0 || bias > 1 {
		return New(ErrCodeInvalidInput, "bias must be in [0, 1], got %g", bias)
	}
	return nil
}

// ValidateFraction validates a fraction parameter such as a braiding
// ratio or a hybrid-walk cutoff.
func ValidateFraction(name string, f float64) error {
	if f < 0 || f > 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1], got %g", name, f)
	}
	return nil
}

// mazeNameRegex matches valid archive names for stored mazes.
var mazeNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateMazeName validates a name under which a maze is archived.
// It rejects names that could be used for path traversal when the
// file-backed archive maps names to files.
func ValidateMazeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "maze name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "maze name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "maze name contains invalid control characters")
		}
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "maze name cannot contain path traversal sequences (..)")
	}
	if !mazeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid maze name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path supplied on the command line or in
// an API request. It prevents path traversal and ensures reasonable
// path length.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
