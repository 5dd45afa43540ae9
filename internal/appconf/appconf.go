package appconf

import "strings"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag (or GATI_ENV variable) onto an
// Environment. Unknown values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config carries the application-level settings shared by every command.
// Dataset locations live in datasets.Config, not here.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int
}
