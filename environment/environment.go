// Package environment decides the run mode of the service and builds
// the key/value snapshot the rest of the app reads its settings from.
package environment

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/logger"
)

const (
	ModeFlagKey            = "ENV"
	ProductionMarker       = "production"
	DefaultDefinitionsFile = ".env"
)

var (
	ErrProductionUnsupported = errors.New("production environment not yet supported")
	ErrNotFound              = errors.New("environment variable not found")
)

// Mode is the run mode selected by the ENV flag
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// Options control where Init gathers its values from.
// Zero values fall back to the OS environment and ./.env
type Options struct {
	Environ         []string // "KEY=value" pairs, as from os.Environ()
	DefinitionsFile string
}

// Env is a read-only snapshot of the environment taken at startup
type Env struct {
	mode Mode
	vars map[string]string
}

// Init builds the Env from the process environment and the local .env file.
// In production mode it returns ErrProductionUnsupported; the caller decides how to exit.
func Init() (*Env, error) {
	return InitFrom(Options{})
}

// InitFrom is Init with an explicit environment and definitions file
func InitFrom(opts Options) (*Env, error) {
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}
	if opts.DefinitionsFile == "" {
		opts.DefinitionsFile = DefaultDefinitionsFile
	}

	vars := parseEnviron(opts.Environ)

	// The flag only comes from the injected environment, never the file
	if vars[ModeFlagKey] == ProductionMarker {
		return nil, ErrProductionUnsupported
	}

	logger.Info("Loading environment from .env file for development...", "file", opts.DefinitionsFile)

	// A missing or unreadable definitions file is skipped silently
	defs, err := godotenv.Read(opts.DefinitionsFile)
	if err != nil {
		defs = nil
	}

	for k, v := range defs {
		if _, exists := vars[k]; !exists {
			vars[k] = v
		}
	}

	return &Env{mode: Development, vars: vars}, nil
}

// Get returns the value for key, or ErrNotFound
func (e *Env) Get(key string) (string, error) {
	val, ok := e.vars[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (e *Env) Mode() Mode {
	return e.mode
}

// Len is the number of keys in the snapshot
func (e *Env) Len() int {
	return len(e.vars)
}

func parseEnviron(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = val
	}
	return vars
}
