package platform

import (
	"context"

	"github.com/aretw0/slipbox/pkg/adapters/fs"
	"github.com/aretw0/slipbox/pkg/core"
)

// New creates a service over the slip-box at path.
//
//	svc, err := slipbox.New("./notes", slipbox.WithRecursive(true))
func New(path string, opts ...Option) (*core.Service, error) {
	o := apply(opts)

	src, err := openSource(path, o)
	if err != nil {
		return nil, err
	}

	loadOpts := []core.LoadOption{
		core.WithStrictIDs(o.strict),
		core.WithConcurrency(o.concurrency),
	}
	return core.NewService(src, o.logger, loadOpts...), nil
}

// Open returns the initialized source for the slip-box at path without
// wrapping it in a service.
func Open(path string, opts ...Option) (core.Source, error) {
	return openSource(path, apply(opts))
}

func openSource(path string, o *options) (core.Source, error) {
	src := o.source
	if src == nil {
		src = fs.NewSource(fs.Config{
			Path:         path,
			Patterns:     o.patterns,
			Recursive:    o.recursive,
			Gitignore:    o.gitignore,
			SystemDir:    o.systemDir,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
	}

	if initializer, ok := src.(core.Initializer); ok {
		if err := initializer.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}
	return src, nil
}
