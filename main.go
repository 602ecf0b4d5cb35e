// Package main wires the environment initializer to the HTTP responder.
package main

import (
	"os"
	"time"

	"rustex/environment"
	"rustex/shutdown"
	"rustex/web"

	"github.com/rohanthewiz/logger"
)

// listenAddress is only changed by tests
var listenAddress = web.DefaultAddress

func main() {
	os.Exit(run())
}

// run returns the process exit code
func run() int {
	env, err := environment.Init()
	if err != nil {
		// Nothing has been bound yet
		logger.LogErr(err, "Unsupported environment", "ENV", os.Getenv(environment.ModeFlagKey))
		return 1
	}

	started := time.Now()
	done := make(chan struct{}) // closed when shutdown is complete
	shutdown.InitShutdownService(done)
	shutdown.RegisterHook(func(_ time.Duration) error {
		logger.Info("Responder stopping", "uptime", time.Since(started).Round(time.Second).String())
		return nil
	})

	responder := web.NewResponder(env, web.Options{Address: listenAddress, Verbose: true})

	errCh := make(chan error, 1)
	go func() { errCh <- responder.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.LogErr(err, "Responder exited")
			return 1
		}
		// rweb traps the same signals and returns nil; let the hooks finish
		<-done
	case <-done:
	}

	logger.Info("App exited")
	return 0
}
