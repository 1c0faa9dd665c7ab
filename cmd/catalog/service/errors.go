package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the service layer. Handlers translate these to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound means an unknown app ID
	ErrNotFound = errors.New("app not found")

	// ErrValidation covers missing or malformed required fields
	ErrValidation = errors.New("validation failed")

	// ErrEmptyFilename means an upload without a selected file
	ErrEmptyFilename = fmt.Errorf("%w: empty filename", ErrValidation)

	// ErrBadExtension means an upload that is not an .apk
	ErrBadExtension = fmt.Errorf("%w: file must have the .apk extension", ErrValidation)

	// ErrConflict means a duplicate username at registration
	ErrConflict = errors.New("username already exists")

	// ErrBadCredentials means a failed login
	ErrBadCredentials = errors.New("invalid credentials")

	// ErrNoArtifact means the app has no APK attached
	ErrNoArtifact = errors.New("apk not available")

	// ErrArtifactGone means the referenced APK file no longer exists on disk
	ErrArtifactGone = errors.New("apk file missing from storage")

	// ErrStorage means an artifact write or read failed
	ErrStorage = errors.New("artifact storage failed")
)
