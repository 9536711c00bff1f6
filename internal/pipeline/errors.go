package pipeline

import "errors"

var ErrArtifactMissing = errors.New("artifact missing")
