package bootstrap

import (
	"github.com/kbukum/meetnotes/config"
)

// Config is the constraint for application configuration types. Any
// struct embedding config.ServiceConfig gets GetServiceConfig through
// promotion and only adds ApplyDefaults and Validate for its sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
