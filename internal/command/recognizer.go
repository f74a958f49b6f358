package command

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// precedingQuotePattern matches the quote marker some chat clients prepend to
// a reply, e.g. "[ ](https://chat.example.com/channel?msg=abc) ".
var precedingQuotePattern = regexp.MustCompile(`^\s*\[ \]\([^)]+\)\s*`)

// StripPrecedingQuote splits a leading quote marker off a message.
//
// Postcondition: Returns the message with the marker removed and the marker
// itself, or the unchanged message and "" when there is no marker.
func StripPrecedingQuote(message string) (raw string, quote string) {
	loc := precedingQuotePattern.FindStringIndex(message)
	if loc == nil {
		return message, ""
	}
	return message[loc[1]:], message[:loc[1]]
}

// Recognizer is the message-side front end of the command core: it decides
// whether a raw chat message is a command at all, resolves the command name
// against the registry, gates on the command's behaviors, and hands the token
// stream to the Parser.
type Recognizer struct {
	cfg      Configuration
	registry *Registry
	parser   *Parser
	logger   *zap.Logger
}

// NewRecognizer creates a Recognizer over the given registry.
//
// Precondition: registry and logger must be non-nil; cfg must satisfy
// Configuration.Validate.
func NewRecognizer(cfg Configuration, registry *Registry, logger *zap.Logger) *Recognizer {
	return &Recognizer{
		cfg:      cfg,
		registry: registry,
		parser:   NewParser(cfg, logger),
		logger:   logger,
	}
}

// Recognize parses one raw chat message into a command instance. fromBot
// reports whether the message was sent by another bot.
//
// Postcondition: Returns the Instance, or nil when the message is not a
// command, names no registered command, is gated off by the command's
// behaviors, or fails to parse.
func (r *Recognizer) Recognize(scope Scope, rawMessage string, fromBot bool) *Instance {
	raw, precedingQuote := StripPrecedingQuote(rawMessage)

	if !strings.HasPrefix(raw, r.cfg.CommandPrefix) {
		return nil
	}

	pieces := Tokenize(raw)
	if len(pieces) == 0 || !strings.HasPrefix(pieces[0].Value, r.cfg.CommandPrefix) {
		return nil
	}
	commandName := pieces[0].Value[len(r.cfg.CommandPrefix):]

	def, ok := r.registry.Resolve(scope, commandName)
	if !ok {
		r.logger.Debug("no such command",
			zap.String("command", commandName),
			zap.Stringer("scope", scope),
		)
		return nil
	}

	if fromBot && !def.Behaviors.AcceptFromBots {
		// command does not want to be triggered by bots
		return nil
	}
	if precedingQuote != "" && !def.Behaviors.AllowPrecedingQuote {
		// command does not allow a quote in front of it
		return nil
	}

	return r.parser.Parse(def, pieces, raw, precedingQuote)
}
