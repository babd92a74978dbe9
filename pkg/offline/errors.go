package offline

import (
	"errors"
	"fmt"
)

var (
	// ErrInstallFailed wraps every error returned from Install.
	ErrInstallFailed = errors.New("install failed")

	// ErrNotInstalled is returned by Ready until Install has completed.
	ErrNotInstalled = errors.New("offline cache not installed")
)

// AssetError describes an asset that could not be fetched during install.
type AssetError struct {
	// URL is the asset path from the Asset List
	URL string

	// StatusCode is the origin status, zero for transport failures
	StatusCode int

	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface.
func (e *AssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch asset %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch asset %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *AssetError) Unwrap() error {
	return e.Err
}
