package types

import "github.com/sirupsen/logrus"

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Log     *logrus.Logger
}

// Logger returns the configured logger, or the logrus standard logger when unset
func (c *AppContext) Logger() *logrus.Logger {
	if c == nil || c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// AppVersion returns the version string, falling back to DefaultVersion
func (c *AppContext) AppVersion() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}
