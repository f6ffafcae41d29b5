package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// flagConfig is an application configuration built from command line flags.
// It is handed to gconf, where the library packages read their settings.
type flagConfig struct {
	values      map[string]string
	interactive bool
}

var _ schuko.Configuration = (*flagConfig)(nil)

func newFlagConfig(level string, maxPasses int, traceSteps bool, interactive bool) *flagConfig {
	c := &flagConfig{values: make(map[string]string), interactive: interactive}
	c.values["tracing"] = "go"
	c.values["tracingsyntax"] = level
	if maxPasses > 0 {
		c.values["gollo.max-passes"] = strconv.Itoa(maxPasses)
	}
	if traceSteps {
		c.values["gollo.trace-steps"] = "true"
	}
	return c
}

// InitDefaults is part of interface schuko.Configuration.
func (c *flagConfig) InitDefaults() {
	if _, ok := c.values["tracingsyntax"]; !ok {
		c.values["tracingsyntax"] = "Error"
	}
}

// IsSet is part of interface schuko.Configuration.
func (c *flagConfig) IsSet(key string) bool {
	_, ok := c.values[key]
	return ok
}

// GetString is part of interface schuko.Configuration.
func (c *flagConfig) GetString(key string) string {
	return c.values[key]
}

// GetInt is part of interface schuko.Configuration.
func (c *flagConfig) GetInt(key string) int {
	n, err := strconv.Atoi(c.values[key])
	if err != nil {
		return 0
	}
	return n
}

// GetBool is part of interface schuko.Configuration.
func (c *flagConfig) GetBool(key string) bool {
	b, _ := strconv.ParseBool(c.values[key])
	return b
}

// IsInteractive is part of interface schuko.Configuration.
func (c *flagConfig) IsInteractive() bool {
	return c.interactive
}

// --- Patterns --------------------------------------------------------------

// patternFlag collects regular expressions for terminals, given as
// repeated flags of the form terminal=regex.
type patternFlag map[string]string

func (p patternFlag) String() string {
	names := maps.Keys(p)
	slices.Sort(names)
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + p[name]
	}
	return strings.Join(pairs, ",")
}

// Set is part of interface flag.Value.
func (p patternFlag) Set(s string) error {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("pattern must be of form terminal=regex, is %q", s)
	}
	p[parts[0]] = parts[1]
	return nil
}
