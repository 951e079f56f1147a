package loader

import "path/filepath"

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		parseVendor:   false,
		excludes:      make(map[string]struct{}),
		packagePrefix: []string{},
		debug:         &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithParseVendor sets whether to parse vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithExcludes sets directory exclusion patterns. Entries are directories,
// relative ones are resolved against the working directory.
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = make(map[string]struct{}, len(excludes))
		for dir := range excludes {
			if abs, err := filepath.Abs(dir); err == nil {
				dir = abs
			}
			s.excludes[filepath.Clean(dir)] = struct{}{}
		}
	}
}

// WithPackagePrefix sets package path prefixes to filter
func WithPackagePrefix(prefixes []string) Option {
	return func(s *Service) {
		s.packagePrefix = prefixes
	}
}

// WithBuildTags sets the build tags passed to the go command.
func WithBuildTags(tags []string) Option {
	return func(s *Service) {
		s.buildTags = tags
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}
