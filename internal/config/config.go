// Package config reads the runtime settings shared by the server and the
// CLI from the environment.
package config

import (
	"github.com/belgraph/reifier/internal/util"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Port      string
	DataDir   string
	Debug     bool
	LogFormat string
	BodyLimit string
	// Parallel bounds how many graphs are loaded or converted at once.
	Parallel int
}

// Load reads the configuration. Call util.LoadEnv first to honour a .env
// file.
func Load() Config {
	c := Config{
		Port:      util.GetEnvString("PORT", "8080"),
		DataDir:   util.GetEnvString("DATA_DIR", "./data"),
		Debug:     util.GetEnvBool("DEBUG", false),
		LogFormat: util.GetEnvString("LOG_FORMAT", FormatText),
		BodyLimit: util.GetEnvString("BODY_LIMIT", "32M"),
		Parallel:  util.GetEnvInt("PARALLEL_GRAPHS", 4),
	}
	if c.LogFormat != FormatJSON {
		c.LogFormat = FormatText
	}
	if c.Parallel < 1 {
		c.Parallel = 1
	}
	return c
}

func (c Config) Addr() string {
	return ":" + c.Port
}
