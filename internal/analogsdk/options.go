package analogsdk

// Option configures an SDK handle at Open time.
type Option func(*SDK)

// WithBufferSize bounds how many key states one poll can return.
// Values below one fall back to DefaultBufferSize.
func WithBufferSize(n int) Option {
	return func(s *SDK) {
		if n > 0 {
			s.bufSize = n
		}
	}
}

// WithKeycodeMode selects the scan-code namespace the SDK reports in.
func WithKeycodeMode(m KeycodeMode) Option {
	return func(s *SDK) {
		s.mode = m
	}
}

// WithExcludedKeys removes the given scan codes from every poll
// result, so held modifiers or known-noisy keys never reach the log.
func WithExcludedKeys(codes ...uint16) Option {
	return func(s *SDK) {
		if len(codes) == 0 {
			return
		}
		s.excluded = make(map[uint16]struct{}, len(codes))
		for _, c := range codes {
			s.excluded[c] = struct{}{}
		}
	}
}
