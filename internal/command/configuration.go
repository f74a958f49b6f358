package command

import (
	"fmt"
	"strings"
)

// Configuration holds the process-wide command syntax settings. It is loaded
// once at startup and treated as read-only afterwards.
type Configuration struct {
	// CommandPrefix marks a message as a command, e.g. "!".
	CommandPrefix string
	// ShortOptionPrefix introduces a bundle of single-character flags and
	// options, e.g. "-".
	ShortOptionPrefix string
	// LongOptionPrefix introduces a single named flag or option, e.g. "--".
	LongOptionPrefix string
	// StopParseOption is the literal token that terminates option parsing,
	// e.g. "--". Everything after it is positional or rest.
	StopParseOption string
	// CaseFoldCommands lowercases command names before registry lookup.
	CaseFoldCommands bool
}

// DefaultConfiguration returns the stock command syntax: "!" command prefix,
// "-" short options, "--" long options, "--" stop-parse token.
func DefaultConfiguration() Configuration {
	return Configuration{
		CommandPrefix:     "!",
		ShortOptionPrefix: "-",
		LongOptionPrefix:  "--",
		StopParseOption:   "--",
		CaseFoldCommands:  false,
	}
}

// Validate checks the configuration invariants.
//
// Postcondition: Returns nil if the configuration is valid, or an error
// describing all violations.
func (c Configuration) Validate() error {
	var errs []string

	if c.CommandPrefix == "" {
		errs = append(errs, "command prefix must not be empty")
	}
	if c.ShortOptionPrefix == "" {
		errs = append(errs, "short option prefix must not be empty")
	}
	if c.LongOptionPrefix == "" {
		errs = append(errs, "long option prefix must not be empty")
	}
	if c.StopParseOption == "" {
		errs = append(errs, "stop-parse option must not be empty")
	}
	// The parser relies on checking the long prefix first; a short prefix
	// that starts with the long prefix would never match.
	if c.ShortOptionPrefix != "" && c.LongOptionPrefix != "" &&
		strings.HasPrefix(c.ShortOptionPrefix, c.LongOptionPrefix) {
		errs = append(errs, fmt.Sprintf(
			"short option prefix %q must not start with long option prefix %q",
			c.ShortOptionPrefix, c.LongOptionPrefix,
		))
	}

	if len(errs) > 0 {
		return fmt.Errorf("command configuration invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}
