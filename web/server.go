package web

import (
	"time"

	"rustex/environment"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

const (
	DefaultAddress = "127.0.0.1:8080"
	AskPath        = "/ask"
)

// Options for the responder. The zero value binds DefaultAddress
type Options struct {
	Address string
	Verbose bool
}

// Responder owns the listener and the route table
type Responder struct {
	env     *environment.Env
	address string
	server  *rweb.Server
}

// NewResponder builds the server with its single route; nothing is bound until Run
func NewResponder(env *environment.Env, opts Options) *Responder {
	if opts.Address == "" {
		opts.Address = DefaultAddress
	}

	s := rweb.NewServer(rweb.ServerOptions{
		Address: opts.Address,
		Verbose: opts.Verbose,
	})

	s.Use(requestLog)

	s.Get(AskPath, askHandler)

	return &Responder{env: env, address: opts.Address, server: s}
}

// Run binds the listener and serves until the process exits.
// It returns nil after SIGINT or SIGTERM, and an error when the server fails,
// e.g. the address is already in use.
func (r *Responder) Run() error {
	logger.Info("Starting responder", "address", r.address, "mode", string(r.env.Mode()))

	if err := r.server.Run(); err != nil {
		return serr.Wrap(err, "failed to run responder", "address", r.address)
	}
	return nil
}

func (r *Responder) Address() string {
	return r.address
}

// requestLog tags each request with an id and logs it once handled
func requestLog(ctx rweb.Context) error {
	reqID := uuid.NewString()
	start := time.Now()

	err := ctx.Next()

	logger.F("request %s %s %s status=%d in %s", reqID,
		ctx.Request().Method(), ctx.Request().Path(), ctx.Response().Status(), time.Since(start))
	if err != nil {
		logger.LogErr(err, "handler failed", "requestID", reqID)
	}
	return err
}
