// Package llm provides a config-driven text generation client.
//
// Hosted and local model APIs differ only in request and response shape,
// so each one is a [Dialect]; the [Adapter] pairs a dialect with the shared
// HTTP client and implements provider.RequestResponse so it composes with
// the provider middlewares and resilience wrappers.
//
// # Usage
//
// Import a dialect package for side-effect registration, then create an adapter:
//
//	import (
//	    "github.com/kbukum/meetnotes/llm"
//	    _ "github.com/kbukum/meetnotes/llm/gemini"
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect: "gemini",
//	    APIKey:  cfg.LLM.APIKey,
//	    Model:   "gemini-1.5-flash",
//	})
//
//	text, err := llm.Complete(ctx, adapter, "", prompt+"\n\n"+transcript)
package llm
