package error

import (
	"errors"
	"fmt"
)

var (
	// Config
	ErrNoAPIKey error = errors.New("TRYON_API_KEY not set")

	// Request
	ErrMissingRequiredFiles error = errors.New("Missing required files")
	ErrUploadTooLarge       error = errors.New("uploaded files too large")
	ErrRateLimited          error = errors.New("too many try-on requests, slow down")

	// Upstream response
	ErrNoImageURL error = errors.New("Could not find image URL in the response")

	// Staging
	ErrNoUploadDir error = errors.New("upload dir not found")
)

func ErrInvalidConfigValue(key, val string) error {
	return fmt.Errorf("invalid value for %s: %q", key, val)
}

func UpstreamRequestFail(status_code int) error {
	return fmt.Errorf("API request failed with status code %d", status_code)
}

func ResultImageDownloadFail(status_code int) error {
	return fmt.Errorf("Failed to download result image: %d", status_code)
}

func ErrCouldNotStageUpload(role string, err error) error {
	return fmt.Errorf("could not stage %s image: %w", role, err)
}
