package summary

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/meetnotes/llm"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/provider"
)

const (
	// Unavailable is the summary used whenever none could be generated.
	Unavailable = "Could not generate summary"

	SummaryPrompt = "You are an expert audio transcription assistant. Summarize the following audio transcript in a professional tone. " +
		"Focus on the main points discussed, key actions, and important information. " +
		"Present the summary in a coherent and concise paragraph:\n"

	KeyPointsPrompt = "Extract the 5-7 most important key points from this transcript. " +
		"Format as a bulleted list focusing on decisions, actions, and main ideas:\n"
)

// Generator produces text completions.
type Generator = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// Config holds summary settings.
type Config struct {
	// FillerWords overrides DefaultFillerWords.
	FillerWords []string `yaml:"filler_words" mapstructure:"filler_words"`
}

// Processor turns merged transcripts into summaries and key points.
type Processor struct {
	gen     Generator
	fillers []string
	log     *logger.Logger
}

// NewProcessor wraps gen with logging, tracing and metrics. A nil gen
// yields a processor that always reports Unavailable.
func NewProcessor(gen Generator, cfg Config, log *logger.Logger, metrics *observability.Metrics) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("summary")
	if gen != nil {
		gen = provider.Chain(
			provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](log),
			provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse]("summary"),
			provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](metrics),
		)(gen)
	}
	fillers := cfg.FillerWords
	if len(fillers) == 0 {
		fillers = DefaultFillerWords
	}
	return &Processor{gen: gen, fillers: fillers, log: log}
}

// Summarize returns the summary of the cleaned transcript and the key
// points of the labeled one. The two generator calls run concurrently. The
// summary call is skipped when nothing survives cleaning.
func (p *Processor) Summarize(ctx context.Context, merged string) (string, []string) {
	cleaned := Clean(merged, p.fillers)

	summary := Unavailable
	points := []string{}
	var g errgroup.Group
	if cleaned != "" {
		g.Go(func() error {
			if text := p.generate(ctx, SummaryPrompt, cleaned); text != "" {
				summary = text
			}
			return nil
		})
	}
	g.Go(func() error {
		points = p.KeyPoints(ctx, merged)
		return nil
	})
	_ = g.Wait()
	return summary, points
}

// KeyPoints asks the generator for key points of text and returns the
// bulleted items. It works on any transcript, labeled or not.
func (p *Processor) KeyPoints(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	resp := p.generate(ctx, KeyPointsPrompt, text)
	if resp == "" {
		return []string{}
	}
	return ParseKeyPoints(resp)
}

// generate returns the trimmed completion, or "" on any failure.
func (p *Processor) generate(ctx context.Context, prompt, text string) string {
	if p.gen == nil {
		return ""
	}
	out, err := llm.Complete(ctx, p.gen, "", prompt+"\n\n"+text)
	if err != nil {
		p.log.WithContext(ctx).Warn("generation failed", logger.Fields(logger.FieldError, err.Error()))
		return ""
	}
	return out
}
