package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/cmdtree/internal/paths"
)

// ErrLockTimeout is returned when another process holds the config lock
// for longer than the lock timeout.
var ErrLockTimeout = errors.New("config: lock timeout")

const (
	lockTimeout      = 5 * time.Second
	staleLockAge     = 30 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

// WithLock runs fn while holding the lock file next to the config file.
func WithLock(fn func() error) error {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}
	unlock, err := lock(configPath+".lock", lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// lock creates path exclusively, polling until timeout. A lock file older
// than staleLockAge is taken over.
func lock(path string, timeout time.Duration) (unlock func(), err error) {
	deadline := time.Now().Add(timeout)
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			_ = f.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("config: lock: %w", err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > staleLockAge {
			_ = os.Remove(path)
			continue
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		time.Sleep(lockPollInterval)
	}
}

// WriteLines replaces the config file with lines, one per line, through a
// temporary file renamed over it.
func WriteLines(lines []string) error {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return replaceFile(configPath, []byte(b.String()))
}

func replaceFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0600); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
