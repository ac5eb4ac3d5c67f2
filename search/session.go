package search

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/index"
)

// Session is the query engine of one page view. It owns the active locale,
// at most one installed index, and the query being typed.
//
// Timer callbacks and fetch completions are handed to the dispatcher, which
// models the page's single event loop. The default dispatcher runs them
// immediately on the calling goroutine.
type Session struct {
	loader   *Loader
	debounce *Debouncer
	dispatch func(func())
	onResult func(folio.Outcome)
	opts     folio.SearchOptions

	mu      sync.Mutex
	locale  folio.Locale
	matcher *index.Matcher
	loading bool
	loadErr error
	query   string
	pending bool // query awaits the index
	seq     uint64
	outcome folio.Outcome
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	clock    folio.Clock
	wait     time.Duration
	dispatch func(func())
	onResult func(folio.Outcome)
	opts     folio.SearchOptions
}

// WithClock sets the clock driving the debounce timer.
func WithClock(c folio.Clock) Option {
	return func(cfg *sessionConfig) { cfg.clock = c }
}

// WithDebounce sets the settle interval.
func WithDebounce(d time.Duration) Option {
	return func(cfg *sessionConfig) { cfg.wait = d }
}

// WithDispatcher sets the function that runs timer callbacks and fetch
// completions.
func WithDispatcher(dispatch func(func())) Option {
	return func(cfg *sessionConfig) { cfg.dispatch = dispatch }
}

// WithResultHandler sets the function receiving every evaluated outcome.
func WithResultHandler(fn func(folio.Outcome)) Option {
	return func(cfg *sessionConfig) { cfg.onResult = fn }
}

// WithSearchOptions sets the ranking options.
func WithSearchOptions(opts folio.SearchOptions) Option {
	return func(cfg *sessionConfig) { cfg.opts = opts }
}

// NewSession returns a Session for locale.
func NewSession(loader *Loader, locale folio.Locale, opts ...Option) *Session {
	cfg := sessionConfig{
		clock:    folio.SystemClock{},
		wait:     DefaultDebounce,
		dispatch: func(f func()) { f() },
		onResult: func(folio.Outcome) {},
		opts:     folio.DefaultSearchOptions(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{
		loader:   loader,
		debounce: NewDebouncer(cfg.clock, cfg.wait),
		dispatch: cfg.dispatch,
		onResult: cfg.onResult,
		opts:     cfg.opts,
		locale:   locale,
	}
	if m, ok := loader.Loaded(locale); ok {
		s.matcher = m
	}
	return s
}

// Locale returns the active locale.
func (s *Session) Locale() folio.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// Ready reports whether the active locale's index is installed.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher != nil
}

// Outcome returns the most recently evaluated outcome.
func (s *Session) Outcome() folio.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Prefetch starts loading the active locale's index if it is not installed
// or loading. A previous load failure is forgotten so the load is retried.
func (s *Session) Prefetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.matcher != nil {
		return
	}
	s.loadErr = nil
	s.startLoad()
}

// Input records the current query text and schedules its evaluation after
// the settle interval. Each call supersedes the previous one.
func (s *Session) Input(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = text
	s.seq++
	seq := s.seq
	s.debounce.Schedule(func() {
		s.dispatch(func() { s.evaluate(seq) })
	})
}

// Flush evaluates the current query immediately, dropping the pending
// debounce timer.
func (s *Session) Flush() {
	s.mu.Lock()
	s.debounce.Cancel()
	s.seq++
	seq := s.seq
	s.mu.Unlock()
	s.evaluate(seq)
}

// Query evaluates q against the active locale's index, waiting for the
// index if necessary.
func (s *Session) Query(ctx context.Context, q string) (folio.Outcome, error) {
	s.mu.Lock()
	locale := s.locale
	s.debounce.Cancel()
	s.seq++
	s.query = q
	s.mu.Unlock()

	m, err := s.loader.Load(ctx, locale)

	s.mu.Lock()
	defer s.mu.Unlock()
	if locale != s.locale {
		return folio.Outcome{Query: q, State: folio.SearchIdle}, folio.Errorf(folio.ECONFLICT, "locale changed to %s during query", s.locale)
	}
	if err != nil {
		s.loadErr = err
		s.outcome = folio.Outcome{Query: q, State: folio.SearchFailed}
		return s.outcome, err
	}
	s.matcher = m
	s.outcome = m.Search(q, s.opts)
	return s.outcome, nil
}

// SetLocale switches the active locale. The query is cleared and any load
// still in flight for the previous locale is discarded when it completes.
func (s *Session) SetLocale(locale folio.Locale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locale == s.locale {
		return
	}

	s.debounce.Cancel()
	s.seq++
	s.locale = locale
	s.matcher = nil
	s.loading = false
	s.loadErr = nil
	s.pending = false
	s.query = ""
	s.outcome = folio.Outcome{State: folio.SearchIdle}
	if m, ok := s.loader.Loaded(locale); ok {
		s.matcher = m
	}
}

// Reset cancels the pending evaluation, discards any result not yet
// rendered and clears the query. An index load in flight continues.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debounce.Cancel()
	s.seq++
	s.query = ""
	s.pending = false
	s.outcome = folio.Outcome{State: folio.SearchIdle}
}

func (s *Session) evaluate(seq uint64) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	out := s.evaluateLocked()
	s.mu.Unlock()

	s.onResult(out)
}

// evaluateLocked computes the outcome of the current query.
// s.mu must be held.
func (s *Session) evaluateLocked() folio.Outcome {
	q := s.query
	switch {
	case len(folio.Tokenize(s.locale, q)) == 0:
		s.pending = false
		s.outcome = folio.Outcome{Query: q, State: folio.SearchIdle}
	case s.matcher != nil:
		s.pending = false
		s.outcome = s.matcher.Search(q, s.opts)
	case s.loadErr != nil:
		s.pending = false
		s.outcome = folio.Outcome{Query: q, State: folio.SearchFailed}
	default:
		s.pending = true
		s.outcome = folio.Outcome{Query: q, State: folio.SearchLoading}
		s.startLoad()
	}
	return s.outcome
}

// startLoad begins loading the active locale's index unless a load is
// already outstanding. s.mu must be held.
func (s *Session) startLoad() {
	if s.loading {
		return
	}
	s.loading = true
	locale := s.locale
	ch := s.loader.Start(locale)
	go func() {
		r := <-ch
		s.dispatch(func() { s.install(locale, r) })
	}()
}

// install applies a completed load. Results for a locale that is no longer
// active are dropped.
func (s *Session) install(locale folio.Locale, r LoadResult) {
	s.mu.Lock()
	if locale != s.locale {
		s.mu.Unlock()
		return
	}
	s.loading = false
	if r.Err != nil {
		s.loadErr = r.Err
	} else {
		s.matcher = r.Matcher
		s.loadErr = nil
	}
	if !s.pending {
		s.mu.Unlock()
		return
	}
	out := s.evaluateLocked()
	s.mu.Unlock()

	s.onResult(out)
}
