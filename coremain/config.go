package coremain

import (
	"time"

	"github.com/pmkol/linkx/mlog"
	"github.com/pmkol/linkx/pkg/script"
)

// Config is the content of a script file.
type Config struct {
	Log     mlog.LogConfig    `yaml:"log"`
	Include []string          `yaml:"include"`
	API     APIConfig         `yaml:"api"`
	Store   StoreConfig       `yaml:"store"`
	Lists   map[string][]any  `yaml:"lists"`
	Ops     []script.OpConfig `yaml:"ops"`
}

type APIConfig struct {
	// HTTP is the listen address of the /metrics endpoint.
	// Empty disables it.
	HTTP string `yaml:"http"`
}

type StoreConfig struct {
	// Redis is a redis:// URL. Snapshots are kept in memory when empty.
	Redis string `yaml:"redis"`

	// Size is the capacity of the in-memory store. Default is 64.
	Size int `yaml:"size"`

	// Timeout of redis operations. Default is 1s.
	Timeout time.Duration `yaml:"timeout"`
}
