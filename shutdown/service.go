// Package shutdown runs registered hooks when the process is asked to stop
package shutdown

import (
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rohanthewiz/logger"
)

const gracePeriod = 5 * time.Second

type HookFunc func(grace time.Duration) error

type shutdownHooks struct {
	hooks []HookFunc
	lock  sync.Mutex
}

var (
	hooks        shutdownHooks
	shuttingDown atomic.Bool
)

func RegisterHook(fn HookFunc) {
	hooks.lock.Lock()
	defer hooks.lock.Unlock()
	hooks.hooks = append(hooks.hooks, fn)
}

// IsShuttingDown reports whether a shutdown signal has been received
func IsShuttingDown() bool {
	return shuttingDown.Load()
}

// InitShutdownService closes done once SIGINT or SIGTERM has been received
// and all registered hooks have returned
func InitShutdownService(done chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig.String())
		runHooks(gracePeriod)
		close(done)
	}()
}

func runHooks(grace time.Duration) {
	shuttingDown.Store(true)

	hooks.lock.Lock()
	fns := append([]HookFunc(nil), hooks.hooks...)
	hooks.lock.Unlock()

	logger.Info("Running shutdown hooks", "count", strconv.Itoa(len(fns)), "grace", grace.String())

	wg := sync.WaitGroup{}
	for i, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(grace); err != nil {
				logger.LogErr(err, "shutdown hook failed", "hook", strconv.Itoa(i))
			}
		}()
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(grace):
		logger.Warn("Shutdown hooks did not finish within grace period")
	}
}
