package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Process exit codes selected from the verification result.
const (
	ExitOK              = 0 // Artifact verified present.
	ExitStageFailure    = 1 // A stage failed or setup was aborted.
	ExitArtifactMissing = 2 // No recorded failure, but the artifact is absent.
)

// Checks the run outcome against the expected final artifact.
//
// A recorded stage failure is returned as-is. When the run recorded no
// failure but the artifact is not a regular file on disk, the inconsistency
// is reported as an error wrapping [ErrArtifactMissing], a distinct kind
// from a command failure, since every stage claimed success. On success the
// artifact path is reported and nil is returned.
func Verify(outcome *Outcome, artifact string) error {
	if outcome.Failed() {
		return outcome.Failure
	}

	info, err := os.Stat(artifact)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: expected %s", ErrArtifactMissing, artifact)
	}

	slog.Info("artifact verified", "path", artifact, "size", info.Size())
	return nil
}

// Selects the process exit status for a verification result.
func ExitStatus(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrArtifactMissing):
		return ExitArtifactMissing
	default:
		return ExitStageFailure
	}
}
