package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// BatchItem names one submission in a batch run.
type BatchItem struct {
	GitHubURL  string `json:"github_url"`
	DevPostURL string `json:"devpost_url,omitempty"`
}

// BatchService validates many submissions against one config with a bounded
// worker pool. Submissions share nothing but the disk cache, so they fan
// out freely; a failed submission degrades to a failure result without
// stopping the batch.
type BatchService struct {
	validator   *ValidateService
	concurrency int
}

// NewBatchService wraps a validator. concurrency values below 1 collapse
// to sequential processing.
func NewBatchService(validator *ValidateService, concurrency int) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchService{validator: validator, concurrency: concurrency}
}

// Run validates every item and returns results in input order.
func (b *BatchService) Run(ctx context.Context, cfg domain.HackathonConfig, items []BatchItem) []*domain.ValidationResult {
	results := make([]*domain.ValidationResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = b.validator.Validate(ctx, cfg, item.GitHubURL, item.DevPostURL)
			return nil
		})
	}
	g.Wait()

	return results
}
