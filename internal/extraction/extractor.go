package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/rfsc/georef-verifier/internal/classify"
	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/prompts"
)

const (
	// MaxAttempts bounds the model calls per document.
	MaxAttempts = 3
	// Backoff is the pause after a throttled attempt.
	Backoff = 60 * time.Second
)

// DocumentReader is the slice of the LLM client that extraction needs.
type DocumentReader interface {
	GenerateFromPDF(ctx context.Context, pdfPath string, prompt string, tier llm.ModelTier) (string, error)
}

// Extractor reads coordinate tables out of survey PDFs.
type Extractor struct {
	Client DocumentReader
	Tier   llm.ModelTier

	// wait pauses between throttled attempts; tests shorten it.
	wait func(ctx context.Context, d time.Duration) error
}

// NewExtractor builds an Extractor over client using tier for every call.
func NewExtractor(client DocumentReader, tier llm.ModelTier) *Extractor {
	return &Extractor{
		Client: client,
		Tier:   tier,
		wait: func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		},
	}
}

// promptKey picks the extraction instruction for a document role. The
// memorial gets the INCRA-anchored instruction; every other document falls
// back to the generic table reader.
func promptKey(role classify.Role) string {
	if role == classify.RoleMemorial {
		return "memorial_incra"
	}
	return "generic_table"
}

// ExtractTable sends the PDF at path to the model and decodes the table it
// returns. Throttled calls are retried after a backoff; other failures
// surface immediately.
func (e *Extractor) ExtractTable(ctx context.Context, path string, role classify.Role) (*Table, error) {
	prompt, err := prompts.Get("extraction.json", promptKey(role))
	if err != nil {
		return nil, err
	}

	var lastErr error
	attempts := 0
	for attempts < MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++

		reply, err := e.Client.GenerateFromPDF(ctx, path, prompt, e.Tier)
		if err == nil {
			return Decode(reply)
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !llm.IsRateLimited(err) || attempts >= MaxAttempts {
			break
		}

		fmt.Printf("Warning: API rate limit hit, waiting %s before retrying table extraction (attempt %d/%d)\n",
			Backoff, attempts, MaxAttempts)
		if err := e.wait(ctx, Backoff); err != nil {
			return nil, err
		}
	}

	return nil, &ExtractionFailedError{Path: path, Attempts: attempts, Cause: lastErr}
}
