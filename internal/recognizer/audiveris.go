package recognizer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds one Audiveris batch run. Large or heavily
// upscaled scans can keep the engine busy for minutes.
const DefaultTimeout = 5 * time.Minute

const installHint = "install Audiveris from https://github.com/Audiveris/audiveris/releases " +
	"and pass its path with -a, or put 'audiveris' on your PATH"

// Audiveris invokes the Audiveris OMR application in batch export mode.
type Audiveris struct {
	// Path is the Audiveris launcher script, binary, or .jar file.
	// When empty, the executable is discovered on PATH.
	Path string

	// Timeout bounds the whole batch run. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Name implements Engine.
func (a *Audiveris) Name() string { return "audiveris" }

// resolve locates the executable, returning ErrNotFound with installation
// guidance when it cannot be found.
func (a *Audiveris) resolve() (string, error) {
	if a.Path == "" {
		found, err := exec.LookPath("audiveris")
		if err != nil {
			return "", fmt.Errorf("%w: not on PATH; %s", ErrNotFound, installHint)
		}
		return found, nil
	}
	if _, err := os.Stat(a.Path); err != nil {
		return "", fmt.Errorf("%w: %s; %s", ErrNotFound, a.Path, installHint)
	}
	return a.Path, nil
}

// command builds the batch invocation. A .jar path is run through the
// java launcher; anything else is executed directly.
func (a *Audiveris) command(ctx context.Context, exePath, imagePath, outputDir string) *exec.Cmd {
	args := []string{"-batch", "-export", "-output", outputDir, imagePath}
	if strings.HasSuffix(exePath, ".jar") {
		return exec.CommandContext(ctx, "java", append([]string{"-jar", exePath}, args...)...)
	}
	return exec.CommandContext(ctx, exePath, args...)
}

// Recognize implements Engine.
//
// The engine is run with "-batch -export -output <dir> <image>" and given
// at most Timeout to finish; on expiry the child process is killed. After
// a clean exit the output file is looked up in the locations Audiveris
// uses: <dir>/<stem>.omr, then under <dir>/<stem>/ as .omr, .mxl, .xml.
func (a *Audiveris) Recognize(ctx context.Context, imagePath, outputDir string) (string, error) {
	exePath, err := a.resolve()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := a.command(runCtx, exePath, imagePath, outputDir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: timed out after %s", ErrFailed, timeout)
		}
		return "", fmt.Errorf("%w: %v: %s", ErrFailed, err, strings.TrimSpace(stderr.String()))
	}

	outputPath, err := findOutput(outputDir, imagePath)
	if err != nil {
		return "", err
	}
	return outputPath, nil
}

// findOutput returns the first output file Audiveris is known to produce
// for the given image, or ErrNoOutput when none exists.
func findOutput(outputDir, imagePath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))

	candidates := []string{
		filepath.Join(outputDir, stem+".omr"),
		filepath.Join(outputDir, stem, stem+".omr"),
		filepath.Join(outputDir, stem, stem+".mxl"),
		filepath.Join(outputDir, stem, stem+".xml"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: nothing found under %s for %s", ErrNoOutput, outputDir, stem)
}
