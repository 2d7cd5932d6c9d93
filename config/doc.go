// Package config loads meetnotes configuration with Viper.
//
// Values come from a YAML file (cmd/<service>/config.yml, config/config.yml
// or ./config.yml), then from the process environment and an optional
// .env.local / .env file loaded with godotenv. Environment keys map onto
// nested config keys by splitting on underscores, so DIARIZATION_HF_TOKEN
// sets diarization.hf_token.
//
//	cfg, err := config.Load[AppConfig]("meetnotes")
//
// Credentials (engine tokens, API keys) are expected to arrive through the
// environment and are never given defaults.
package config
