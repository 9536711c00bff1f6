package sandbox

import "errors"

var (
	ErrSetup         = errors.New("environment setup failed")
	ErrCommandFailed = errors.New("command failed")
)
