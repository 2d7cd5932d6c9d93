package main

import (
	"context"
	"fmt"

	"github.com/kbukum/meetnotes/bootstrap"
	"github.com/kbukum/meetnotes/component"
	"github.com/kbukum/meetnotes/diarization"
	"github.com/kbukum/meetnotes/handler"
	"github.com/kbukum/meetnotes/llm"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/pipeline"
	"github.com/kbukum/meetnotes/provider"
	"github.com/kbukum/meetnotes/report"
	"github.com/kbukum/meetnotes/segmenter"
	"github.com/kbukum/meetnotes/server"
	"github.com/kbukum/meetnotes/storage"
	"github.com/kbukum/meetnotes/summary"
	"github.com/kbukum/meetnotes/transcription"
	"github.com/kbukum/meetnotes/util"
)

// wire builds the service context once and registers its components. The
// HTTP server is registered last so it starts after everything it serves
// and stops first.
func wire(ctx context.Context, app *bootstrap.App[*AppConfig]) error {
	cfg := app.Cfg
	log := app.Logger

	shutdown, err := observability.Init(ctx, cfg.Observability, cfg.Name, cfg.Version)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(func(ctx context.Context) error { return shutdown(ctx) })

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	store, err := storage.New(cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	reports := report.NewWriter(store, cfg.Report, log)

	tp, err := transcription.NewProvider(cfg.Transcription)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	transcriber := transcription.NewAdapter(tp, cfg.Transcription, log, metrics)

	dp, err := diarization.NewProvider(cfg.Diarization)
	if err != nil {
		return fmt.Errorf("diarization: %w", err)
	}
	diarizer := diarization.NewAdapter(dp, cfg.Diarization, log, metrics)

	gen, err := llm.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	summarizer := summary.NewProcessor(
		provider.WithResilience[llm.CompletionRequest, llm.CompletionResponse](gen, cfg.LLM.Resilience),
		cfg.Summary, log, metrics)

	proc, err := pipeline.New(cfg.Pipeline, pipeline.Deps{
		Splitter:    segmenter.New(log),
		Segments:    cfg.Segmenter,
		Transcriber: transcriber,
		Diarizer:    diarizer,
		Alignment:   cfg.Alignment,
		Summarizer:  summarizer,
		Reports:     reports,
		Log:         log,
		Metrics:     metrics,
	})
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	srv := server.New(cfg.Server, log)
	h, err := handler.New(cfg.Handler, proc, summarizer, reports, log)
	if err != nil {
		return fmt.Errorf("handler: %w", err)
	}
	h.Register(srv.GinEngine())
	srv.RegisterProbes(cfg.Name, app.Health)

	for _, c := range []component.Component{
		component.NewProbe(transcriber, "engine", engineDetails(cfg.Transcription.Provider, cfg.Transcription.URL)),
		component.NewProbe(diarizer, "engine", engineDetails(cfg.Diarization.Provider, cfg.Diarization.URL)),
		component.NewProbe(gen, "llm", cfg.LLM.Model),
		server.NewComponent(srv),
	} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	log.Info("Service context built", logger.Fields(
		"storage", cfg.Storage.Provider,
		"reports", cfg.Report.Enabled,
		"parallel_engines", *cfg.Pipeline.ParallelEngines,
		"max_concurrent", cfg.Pipeline.MaxConcurrent,
		"hf_token", credential(cfg.Diarization.HFToken),
		"llm_api_key", credential(cfg.LLM.APIKey),
	))
	return nil
}

// credential reports whether a secret is set without logging it.
func credential(s string) string {
	if s == "" {
		return "unset"
	}
	return util.MaskSecret(s, 3)
}

func engineDetails(name, url string) string {
	if url == "" {
		return name
	}
	return name + " " + url
}
