package feed

import "go.uber.org/zap"

const (
	// DefaultFeedBatchSize bounds how many feed items one page request asks
	// for. Small on purpose: the walker usually stops within a page or two.
	DefaultFeedBatchSize = 5

	// DefaultFollowBatchSize is larger because follow entries are
	// lightweight and the enumeration always runs to exhaustion.
	DefaultFollowBatchSize = 50
)

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger used for informational notices.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithFeedBatchSize overrides the author feed page size.
func WithFeedBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.feedBatch = n
		}
	}
}

// WithFollowBatchSize overrides the follows page size.
func WithFollowBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.followBatch = n
		}
	}
}

// WithConcurrency bounds how many author feeds are walked in parallel during
// aggregation. The default of 1 walks one author fully before the next
// begins.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Service drives follow enumeration and feed walking against injected page
// sources. It holds no per-run state; one Service can serve many runs.
type Service struct {
	follows     FollowSource
	feeds       FeedSource
	log         *zap.Logger
	feedBatch   int
	followBatch int
	concurrency int
}

// NewService creates a Service over the given page sources.
func NewService(follows FollowSource, feeds FeedSource, opts ...Option) *Service {
	s := &Service{
		follows:     follows,
		feeds:       feeds,
		log:         zap.NewNop(),
		feedBatch:   DefaultFeedBatchSize,
		followBatch: DefaultFollowBatchSize,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
