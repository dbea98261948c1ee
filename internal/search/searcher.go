package search

import (
	"context"
	"time"

	"storefront-client/internal/logger"
	"storefront-client/internal/product"
	"storefront-client/internal/utils"

	"go.uber.org/zap"
)

// Finder is the product lookup a Searcher runs once typing settles.
type Finder interface {
	Search(ctx context.Context, term string) ([]product.Product, error)
}

type Result struct {
	Seq      uint64
	Term     string
	Products []product.Product
	Err      error
}

// Searcher turns a stream of partial queries into product searches.
// Requests already sent are not cancelled; their results are dropped when a
// newer query exists by the time they arrive.
type Searcher struct {
	finder   Finder
	debounce *Debouncer
	deliver  func(Result)
}

func NewSearcher(finder Finder, delay time.Duration, deliver func(Result)) *Searcher {
	return &Searcher{
		finder:   finder,
		debounce: NewDebouncer(delay),
		deliver:  deliver,
	}
}

// Query records the latest input. The search runs after the quiet period.
func (s *Searcher) Query(ctx context.Context, term string) uint64 {
	term = utils.CollapseSpaces(term)
	return s.debounce.Trigger(func(seq uint64) {
		s.run(ctx, seq, term)
	})
}

func (s *Searcher) run(ctx context.Context, seq uint64, term string) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "search"),
		zap.Uint64("seq", seq),
		zap.String("term", term),
	)

	products, err := s.finder.Search(ctx, term)
	if !s.debounce.IsLatest(seq) {
		log.Debug("dropping stale search result")
		return
	}
	if err != nil {
		log.Warn("search failed", zap.Error(err))
	}
	s.deliver(Result{Seq: seq, Term: term, Products: products, Err: err})
}

func (s *Searcher) Stop() {
	s.debounce.Stop()
}
