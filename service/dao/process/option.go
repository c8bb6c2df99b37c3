package process

import (
	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// Option configures the process service
type Option func(s *Service)

// WithFS sets the storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithBaseURL sets the location relative paths resolve against
func WithBaseURL(URL string) Option {
	return func(s *Service) {
		s.baseURL = URL
	}
}

// WithFsOptions sets storage options, e.g. an embed.FS for embed:// URLs
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithEnv sets the lookup used to expand ${env.KEY} expressions
func WithEnv(getenv func(string) string) Option {
	return func(s *Service) {
		s.getenv = getenv
	}
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
