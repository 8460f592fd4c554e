package recognizer

import (
	"context"
	"errors"
)

// Sentinel errors distinguishing the invocation failure classes. Callers
// use errors.Is to pick the right user-facing remediation.
var (
	// ErrNotFound means the engine executable could not be located.
	// Reported before any subprocess is started.
	ErrNotFound = errors.New("recognizer executable not found")

	// ErrFailed means the engine ran but exited non-zero or was killed
	// on timeout. The wrapping error carries captured stderr.
	ErrFailed = errors.New("recognizer failed")

	// ErrNoOutput means the engine exited cleanly but left no usable
	// output file behind. Kept distinct from ErrFailed to aid debugging.
	ErrNoOutput = errors.New("recognizer produced no output")
)

// Engine runs symbol recognition on an image file and returns the path to
// the structured output it produced inside outputDir.
//
// Implementations must honor ctx cancellation by terminating any child
// process they started.
type Engine interface {
	// Recognize processes the image at imagePath, writing results under
	// outputDir, and returns the path of the produced output file.
	Recognize(ctx context.Context, imagePath, outputDir string) (string, error)

	// Name identifies the engine for logging.
	Name() string
}
