package classify

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rfsc/georef-verifier/internal/document"
	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/prompts"
)

const (
	// MaxAttempts is the total number of model calls a page may consume.
	MaxAttempts = 3
	// Backoff is the pause between throttled attempts, so a page waits at
	// most twice.
	Backoff = 60 * time.Second
)

// ImageClassifier is the slice of the LLM client that classification needs.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, imagePath string, prompt string, tier llm.ModelTier) (string, error)
}

// Classifier walks a document page by page and asks the model whether each
// page carries the wanted document.
type Classifier struct {
	Client  ImageClassifier
	Tier    llm.ModelTier
	Verbose bool

	// wait pauses between throttled attempts; tests shorten it.
	wait func(ctx context.Context, d time.Duration) error
}

// NewClassifier builds a Classifier over client using tier for every call.
func NewClassifier(client ImageClassifier, tier llm.ModelTier) *Classifier {
	return &Classifier{
		Client: client,
		Tier:   tier,
		wait:   sleepContext,
	}
}

// FindPages classifies every page of r for role. Pages fail independently:
// a page that exhausts its attempts or hits a hard error is recorded as
// FAILED and the walk moves on. Only cancellation stops the whole run.
func (c *Classifier) FindPages(ctx context.Context, r document.PageRenderer, role Role) (*Outcome, error) {
	prompt, err := prompts.Get("classify.json", role.PromptKey())
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Role: role}
	total := r.PageCount()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := c.classifyPage(ctx, r, i, total, prompt)
		if result.Err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		outcome.Results = append(outcome.Results, result)
	}
	return outcome, nil
}

// classifyPage runs the attempt loop for one page. The rendered page image
// is removed once the page reaches a terminal state, whatever that state is.
func (c *Classifier) classifyPage(ctx context.Context, r document.PageRenderer, index, total int, prompt string) PageResult {
	result := PageResult{Index: index, State: StatePending}

	imagePath, err := r.RenderPage(ctx, index)
	if err != nil {
		result.State = StateFailed
		result.Err = &ClassifyError{Page: index + 1, Message: "could not render page image", Cause: err}
		fmt.Printf("Warning: could not render page %d: %v\n", index+1, err)
		return result
	}
	defer func() {
		if err := os.Remove(imagePath); err != nil {
			fmt.Printf("Warning: could not remove page image %s: %v\n", imagePath, err)
		}
	}()

	for {
		result.State = StateClassifying
		result.Attempts++
		c.verbosef("Page %d/%d: attempt %d/%d", index+1, total, result.Attempts, MaxAttempts)

		verdict, err := c.Client.ClassifyImage(ctx, imagePath, prompt, c.Tier)
		if err == nil {
			result.Verdict = verdict
			if strings.Contains(strings.ToUpper(strings.TrimSpace(verdict)), "SIM") {
				result.State = StateMatched
			} else {
				result.State = StateUnmatched
			}
			c.verbosef("Page %d/%d: %s", index+1, total, result.State)
			return result
		}

		if ctx.Err() != nil {
			result.State = StateFailed
			result.Err = ctx.Err()
			return result
		}

		if !llm.IsRateLimited(err) {
			result.State = StateFailed
			result.Err = &ClassifyError{Page: index + 1, Message: "model call failed", Cause: err}
			fmt.Printf("Warning: page %d classification failed: %v\n", index+1, err)
			return result
		}

		result.State = StateRateLimited
		if result.Attempts >= MaxAttempts {
			result.State = StateFailed
			result.Err = err
			fmt.Printf("Warning: API limit still exceeded after %d attempts on page %d\n", MaxAttempts, index+1)
			return result
		}

		result.State = StateWaiting
		fmt.Printf("Warning: API rate limit hit, waiting %s before retrying page %d (attempt %d/%d)\n",
			Backoff, index+1, result.Attempts, MaxAttempts)
		if err := c.wait(ctx, Backoff); err != nil {
			result.State = StateFailed
			result.Err = err
			return result
		}
	}
}

func (c *Classifier) verbosef(format string, args ...any) {
	if c.Verbose {
		fmt.Printf("[VERBOSE] "+format+"\n", args...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
