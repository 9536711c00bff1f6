package build

import "errors"

var (
	ErrManifest  = errors.New("invalid manifest")
	ErrNoVersion = errors.New("no version matches the pattern")
)
