package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BatchItem is one resume to score: a stable identifier for the result table
// and the path of the stored document.
type BatchItem struct {
	Ref  string
	Path string
}

// ItemResult pairs an input resume with either its match result or the error
// that sank it. Exactly one of Result/Err is set.
type ItemResult struct {
	Ref    string
	Result *MatchResult
	Err    error
}

// BatchEvaluator scores one job description against N resumes. Items are
// independent, so they are fanned out over a bounded worker pool; results are
// reassembled in input order regardless of completion order. The embedding
// provider handle behind the scorer is the genai client, which is safe for
// concurrent use, so a single shared instance serves all workers.
type BatchEvaluator struct {
	extractor TextExtractor
	sections  *SectionExtractor
	scorer    *RelevanceScorer

	concurrency int
	itemTimeout time.Duration

	logger *zap.Logger
}

func NewBatchEvaluator(
	extractor TextExtractor,
	sections *SectionExtractor,
	scorer *RelevanceScorer,
	concurrency int,
	itemTimeout time.Duration,
	logger *zap.Logger,
) *BatchEvaluator {
	if concurrency < 1 {
		concurrency = 1
	}

	return &BatchEvaluator{
		extractor:   extractor,
		sections:    sections,
		scorer:      scorer,
		concurrency: concurrency,
		itemTimeout: itemTimeout,
		logger:      logger,
	}
}

// Evaluate runs the scorer over every resume. An empty JD or resume set is a
// caller error rejected upfront with ErrMissingInput. A failure on one item is
// isolated into its ItemResult and never aborts siblings. mustHaveSkills, when
// non-empty, overrides the skills extracted from the JD text (recruiters
// declare them explicitly when posting a job).
func (b *BatchEvaluator) Evaluate(ctx context.Context, jdText string, mustHaveSkills []string, resumes []BatchItem) ([]ItemResult, error) {
	if strings.TrimSpace(jdText) == "" || len(resumes) == 0 {
		return nil, ErrMissingInput
	}

	jdSections := b.sections.ExtractJDSections(Normalize(jdText))
	if len(mustHaveSkills) > 0 {
		jdSections.MustHaveSkills = mustHaveSkills
	}

	results := make([]ItemResult, len(resumes))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				item := resumes[i]
				result, err := b.evaluateOne(ctx, jdText, jdSections, item)
				results[i] = ItemResult{Ref: item.Ref, Result: result, Err: err}

				if err != nil {
					b.logger.Warn("resume evaluation failed",
						zap.String("resume", item.Ref),
						zap.String("kind", ErrorKind(err)),
						zap.Error(err),
					)
				}
			}
		}()
	}

	for i := range resumes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

func (b *BatchEvaluator) evaluateOne(ctx context.Context, jdText string, jdSections JDSections, item BatchItem) (*MatchResult, error) {
	itemCtx, cancel := context.WithTimeout(ctx, b.itemTimeout)
	defer cancel()

	resumeText, err := b.extractor.Extract(itemCtx, item.Path)
	if err != nil {
		return nil, b.wrapTimeout(itemCtx, err)
	}

	result, err := b.scorer.Score(itemCtx, resumeText, jdText, jdSections)
	if err != nil {
		return nil, b.wrapTimeout(itemCtx, err)
	}

	return result, nil
}

// wrapTimeout maps an item-budget expiry to ErrTimeout; other errors pass
// through untouched.
func (b *BatchEvaluator) wrapTimeout(itemCtx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || itemCtx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w after %s: %v", ErrTimeout, b.itemTimeout, err)
	}
	return err
}
