package api

import "github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins restricts allowed origins; "*" or an empty list allows all.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithPprof mounts the pprof routes under /debug/pprof.
func WithPprof(enabled bool) Option {
	return func(s *Server) {
		s.pprof = enabled
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
