package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Reloader polls the running binary's mtime and fires a callback once a
// newer build lands in its place. Development convenience: recompile and
// the app offers to restart itself.
type Reloader struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stopCh   chan struct{}

	onNewBinary func()
}

// NewReloader watches the current executable. Returns nil if the
// executable path cannot be resolved.
func NewReloader(interval time.Duration) *Reloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build writes a new file; follow the symlink so we stat the real
	// one.
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}

	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}

	return &Reloader{
		execPath: execPath,
		baseline: info.ModTime(),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// OnNewBinary sets the callback invoked when a newer binary is detected.
// It runs on a background goroutine.
func (r *Reloader) OnNewBinary(fn func()) {
	r.onNewBinary = fn
}

// Start begins watching in a background goroutine.
func (r *Reloader) Start() {
	r.stopCh = make(chan struct{})
	go r.watch()
}

// Stop ends the watch.
func (r *Reloader) Stop() {
	close(r.stopCh)
}

func (r *Reloader) watch() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if r.updated() {
				if r.onNewBinary != nil {
					r.onNewBinary()
				}
				// Fire once per detection.
				return
			}
		}
	}
}

func (r *Reloader) updated() bool {
	info, err := os.Stat(r.execPath)
	if err != nil {
		return false
	}
	return info.ModTime().After(r.baseline)
}

// ExecPath returns the watched executable path.
func (r *Reloader) ExecPath() string {
	return r.execPath
}

// ResetBaseline accepts the current binary as the baseline, so declining
// a restart doesn't re-prompt every tick.
func (r *Reloader) ResetBaseline() {
	if info, err := os.Stat(r.execPath); err == nil {
		r.baseline = info.ModTime()
	}
}

// Restart replaces the current process with a fresh instance of the
// binary, keeping arguments and environment. Does not return on success.
func (r *Reloader) Restart() error {
	return syscall.Exec(r.execPath, os.Args, os.Environ())
}
