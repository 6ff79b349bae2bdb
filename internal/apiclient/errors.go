package apiclient

import (
	"fmt"
	"net/http"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// APIError is a non-2xx response from the backend, carrying the status
// code and the server's error message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Is maps HTTP statuses onto the domain sentinels so callers can use
// errors.Is without inspecting codes. A 401 matches both
// ErrInvalidCredentials (signin rejection) and ErrSessionExpired
// (expiry on an authenticated call); a 403 matches only ErrForbidden.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusUnauthorized:
		return target == domain.ErrInvalidCredentials || target == domain.ErrSessionExpired
	case http.StatusForbidden:
		return target == domain.ErrForbidden
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusConflict:
		return target == domain.ErrUserExists
	}
	return false
}
