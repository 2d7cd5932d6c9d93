// Command meetnotes serves the meeting-notes HTTP API: upload a recording,
// get back a speaker-labeled transcript, a summary and key points.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kbukum/meetnotes/bootstrap"
	"github.com/kbukum/meetnotes/config"
	"github.com/kbukum/meetnotes/version"

	_ "github.com/kbukum/meetnotes/diarization/pyannote"
	_ "github.com/kbukum/meetnotes/llm/gemini"
	_ "github.com/kbukum/meetnotes/llm/ollama"
	_ "github.com/kbukum/meetnotes/storage/local"
	_ "github.com/kbukum/meetnotes/storage/s3"
	_ "github.com/kbukum/meetnotes/transcription/whisper"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml (default: search ./cmd/meetnotes, ./config, .)")
	envFile := flag.String("env", "", "path to a .env file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(context.Background(), *configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "meetnotes: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, envFile string) error {
	cfg, err := loadConfig(configFile, envFile)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithGracefulTimeout(time.Duration(cfg.Server.ShutdownTimeout)*time.Second))
	if err != nil {
		return err
	}
	if err := wire(ctx, app); err != nil {
		return err
	}
	return app.Run(ctx)
}

func loadConfig(configFile, envFile string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	return config.Load[AppConfig](serviceName, opts...)
}
