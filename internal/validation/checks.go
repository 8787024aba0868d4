package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
)

// CheckCommandExists verifies a command is available on PATH and returns
// its resolved location.
func CheckCommandExists(command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("command name is required")
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return "", err
	}
	return path, nil
}

// CheckWorkDirWritable verifies dir exists, or can be created, and accepts
// new files.
func CheckWorkDirWritable(dir string) error {
	if dir == "" {
		return fmt.Errorf("work directory is required")
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("path %s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".snipexec-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
