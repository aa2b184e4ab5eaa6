package query

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
	"crmsearch/internal/provider"
)

// Service is the query session controller. It owns the query text, the
// debounce timer and the loading flag, and decides which provider response
// may reach the results.
//
// All methods must be called from the event loop; timers and provider calls
// come back through Options.Post.
type Service struct {
	state     *State
	provider  provider.Provider
	bus       eventbus.EventBus
	scheduler Scheduler
	post      Poster
	debounce  time.Duration
	minLength int

	timer  Timer
	ctx    context.Context
	cancel context.CancelFunc

	onResults func(*domain.ResultSet)
	onClear   func()
}

// NewService creates a new query service
func NewService(p provider.Provider, bus eventbus.EventBus, opts Options) *Service {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Post == nil {
		// Without a loop everything runs inline on the caller's goroutine.
		opts.Post = func(fn func()) { fn() }
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		state:     &State{},
		provider:  p,
		bus:       bus,
		scheduler: opts.Scheduler,
		post:      opts.Post,
		debounce:  opts.Debounce,
		minLength: opts.MinLength,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetResultsHandler sets the function receiving every applied result set
func (s *Service) SetResultsHandler(fn func(*domain.ResultSet)) {
	s.onResults = fn
}

// SetClearHandler sets the function called when results must be cleared
func (s *Service) SetClearHandler(fn func()) {
	s.onClear = fn
}

// Query returns the raw query text
func (s *Service) Query() string {
	return s.state.Query
}

// TrimmedQuery returns the query as it is sent to the provider
func (s *Service) TrimmedQuery() string {
	return strings.TrimSpace(s.state.Query)
}

// TooShort reports whether the current query is below the minimum length
func (s *Service) TooShort() bool {
	return utf8.RuneCountInString(s.TrimmedQuery()) < s.minLength
}

// IsLoading reports whether the latest request is still in flight
func (s *Service) IsLoading() bool {
	return s.state.Loading
}

// MinLength returns the minimum query length
func (s *Service) MinLength() int {
	return s.minLength
}

// SetQuery updates the query and restarts the debounce timer.
// A still-pending timer is cancelled first so only the last one fires.
func (s *Service) SetQuery(text string) {
	s.state.Query = text
	s.stopTimer()

	s.state.generation++
	gen := s.state.generation
	s.timer = s.scheduler.AfterFunc(s.debounce, func() {
		s.post(func() {
			if gen != s.state.generation {
				return
			}
			s.timer = nil
			s.fire()
		})
	})

	s.bus.Publish(domain.SearchScheduledEvent{Query: text})
}

// Close cancels the pending timer and suppresses every in-flight response.
// The service can be used again afterwards.
func (s *Service) Close() {
	s.stopTimer()
	s.state.generation++
	s.state.Seq++
	s.state.Loading = false
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

// Reset clears the query text and results without scheduling a search
func (s *Service) Reset() {
	s.Close()
	s.state.Query = ""
	s.clear()
}

func (s *Service) fire() {
	q := s.TrimmedQuery()

	if utf8.RuneCountInString(q) < s.minLength {
		// Anything still in flight belongs to an older query.
		s.state.Seq++
		s.state.Loading = false
		s.clear()
		s.bus.Publish(domain.SearchClearedEvent{Query: q})
		return
	}

	s.state.Seq++
	seq := s.state.Seq
	s.state.Loading = true
	s.bus.Publish(domain.SearchDispatchedEvent{Seq: seq, Query: q})
	log.Printf("Search dispatched seq=%d q=%q", seq, q)

	ctx := s.ctx
	p := s.provider
	go func() {
		rs, err := safeSearch(ctx, p, q)
		s.post(func() {
			s.Apply(Response{Seq: seq, Query: q, Set: rs, Err: err})
		})
	}()
}

// Apply applies a settled response if it belongs to the last dispatched
// request and nothing newer has been applied. Otherwise it is dropped.
func (s *Service) Apply(resp Response) bool {
	if resp.Seq != s.state.Seq || resp.Seq <= s.state.AppliedSeq {
		log.Printf("Dropping stale search response seq=%d latest=%d", resp.Seq, s.state.Seq)
		s.bus.Publish(domain.StaleResponseDroppedEvent{Seq: resp.Seq, Latest: s.state.Seq})
		return false
	}

	s.state.AppliedSeq = resp.Seq
	s.state.Loading = false

	if resp.Err != nil {
		log.Printf("Search failed seq=%d q=%q: %v", resp.Seq, resp.Query, resp.Err)
		s.clear()
		s.bus.Publish(domain.SearchFailedEvent{Seq: resp.Seq, Query: resp.Query, Err: resp.Err})
		return true
	}

	rs := resp.Set
	if rs == nil {
		rs = &domain.ResultSet{}
	}
	if s.onResults != nil {
		s.onResults(rs)
	}
	s.bus.Publish(domain.SearchCompletedEvent{Seq: resp.Seq, Query: resp.Query, Count: rs.Len()})
	return true
}

func (s *Service) clear() {
	if s.onClear != nil {
		s.onClear()
	}
}

func (s *Service) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// safeSearch keeps a panicking provider from taking down the loop
func safeSearch(ctx context.Context, p provider.Provider, q string) (rs *domain.ResultSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.Search(ctx, q)
}
