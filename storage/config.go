package storage

import (
	"errors"
	"fmt"
)

const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// Config selects where finished reports are kept. Only the section of the
// chosen provider is read.
type Config struct {
	Provider string      `mapstructure:"provider" json:"provider"`
	Local    LocalConfig `mapstructure:"local" json:"local"`
	S3       S3Config    `mapstructure:"s3" json:"s3"`
}

type LocalConfig struct {
	BasePath string `mapstructure:"base_path" json:"base_path"`
}

// S3Config also covers S3-compatible stores such as MinIO through Endpoint
// and ForcePathStyle. Empty keys fall back to the AWS default chain.
type S3Config struct {
	Bucket         string `mapstructure:"bucket" json:"bucket"`
	Prefix         string `mapstructure:"prefix" json:"prefix"`
	Region         string `mapstructure:"region" json:"region"`
	Endpoint       string `mapstructure:"endpoint" json:"endpoint"`
	AccessKey      string `mapstructure:"access_key" json:"-"`
	SecretKey      string `mapstructure:"secret_key" json:"-"`
	ForcePathStyle bool   `mapstructure:"force_path_style" json:"force_path_style"`
}

func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.Local.BasePath == "" {
		c.Local.BasePath = "./data"
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLocal:
		if c.Local.BasePath == "" {
			return errors.New("storage: local.base_path is required")
		}
		return nil
	case ProviderS3:
		return c.S3.validate()
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
}

func (c S3Config) validate() error {
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("s3.bucket is required"))
	}
	if c.Region == "" {
		errs = append(errs, errors.New("s3.region is required"))
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		errs = append(errs, errors.New("s3.access_key and s3.secret_key must be set together"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}
