// Package shutdown coordinates signal-driven teardown: it waits for
// SIGINT/SIGTERM, then runs the registered cleanup steps in order,
// logging failures instead of aborting the chain.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"

	"oneshot/pkg/logger"
)

// Step is one named cleanup action.
type Step struct {
	Name string
	Fn   func() error
}

// Wait blocks until SIGINT or SIGTERM arrives and returns the signal.
func Wait() os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	return <-ch
}

// Run executes the steps in order. Every step runs even when earlier
// ones fail; the first error is returned.
func Run(steps ...Step) error {
	var first error
	for _, s := range steps {
		if err := s.Fn(); err != nil {
			logger.Error("shutdown_step_failed", "step", s.Name, "error", err)
			if first == nil {
				first = err
			}
			continue
		}
		logger.Info("shutdown_step_done", "step", s.Name)
	}
	return first
}
