package command

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type optionOutcome int

const (
	optionFailed optionOutcome = iota
	handledAsFlag
	handledAsOption
)

// Parser binds tokenized chat messages against command definitions. It is
// stateless apart from its configuration and logger, so a single Parser may
// be shared by any number of goroutines.
type Parser struct {
	cfg    Configuration
	logger *zap.Logger
}

// NewParser creates a Parser for the given command syntax.
//
// Precondition: logger must be non-nil, and cfg.ShortOptionPrefix must not
// start with cfg.LongOptionPrefix. A violated prefix invariant is a
// programmer error and panics; validated startup configuration never
// triggers it.
func NewParser(cfg Configuration, logger *zap.Logger) *Parser {
	if strings.HasPrefix(cfg.ShortOptionPrefix, cfg.LongOptionPrefix) {
		panic(fmt.Sprintf(
			"short option prefix %q must not start with long option prefix %q",
			cfg.ShortOptionPrefix, cfg.LongOptionPrefix,
		))
	}
	return &Parser{cfg: cfg, logger: logger}
}

// Parse walks the token stream of one message and produces the command
// instance: flags set, typed option values, positional arguments, and the
// verbatim trailing rest. pieces[0] is trusted to be the command word and is
// skipped; rawMessage must be the exact string the pieces were tokenized
// from, so that byte offsets recover the rest text unmangled.
//
// Postcondition: Returns the Instance, or nil on any user-input parse
// failure. Failures are diagnosed through the logger only; callers cannot
// and should not distinguish failure kinds.
func (p *Parser) Parse(def *Definition, pieces []Token, rawMessage string, precedingQuote string) *Instance {
	if def.Behaviors.NoArgumentParsing {
		// free-form commands get the raw post-command text untouched
		rest := ""
		if len(pieces) > 1 {
			rest = rawMessage[pieces[1].Start:]
		}
		return &Instance{
			Name:           def.Name,
			Flags:          make(map[string]bool),
			Options:        make(map[string]Value),
			Args:           []string{},
			Rest:           rest,
			PrecedingQuote: precedingQuote,
		}
	}

	inst := &Instance{
		Name:           def.Name,
		Flags:          make(map[string]bool),
		Options:        make(map[string]Value),
		Args:           make([]string, 0, def.ArgCount),
		PrecedingQuote: precedingQuote,
	}

	i := 1
	for i < len(pieces) {
		piece := pieces[i].Value

		if piece == p.cfg.StopParseOption {
			// no more options beyond this point, just positional args
			i++
			break
		}

		if strings.HasPrefix(piece, p.cfg.LongOptionPrefix) {
			// it's a long option/flag
			optionName := piece[len(p.cfg.LongOptionPrefix):]
			outcome := p.handleOption(def, optionName, "", &i, pieces, rawMessage, inst)
			if outcome == optionFailed {
				// diagnostics already logged
				return nil
			}
		} else if strings.HasPrefix(piece, p.cfg.ShortOptionPrefix) {
			// it's a bundle of short options
			valueTakenBy := ""
			for _, c := range piece[len(p.cfg.ShortOptionPrefix):] {
				optionName := string(c)
				outcome := p.handleOption(def, optionName, valueTakenBy, &i, pieces, rawMessage, inst)
				switch outcome {
				case optionFailed:
					// diagnostics already logged
					return nil
				case handledAsOption:
					// this option gobbled up the following token; a second
					// value-taking option in the same bundle is a conflict
					valueTakenBy = optionName
				}
			}
		} else if len(inst.Args) < def.ArgCount || def.Behaviors.RestAsArgs {
			// positional argument
			inst.Args = append(inst.Args, piece)
		} else {
			// this token begins the rest
			break
		}

		i++
	}

	// gobble up the remaining positional arguments, dashes and all
	for len(inst.Args) < def.ArgCount {
		if i >= len(pieces) {
			p.logger.Warn("missing positional argument",
				zap.Int("got", len(inst.Args)),
				zap.Int("need", def.ArgCount),
				zap.String("command", def.Name),
			)
			p.logger.Debug("offending command line", zap.String("raw_message", rawMessage))
			return nil
		}
		inst.Args = append(inst.Args, pieces[i].Value)
		i++
	}

	// whatever is left is the rest, verbatim from the raw message
	if i < len(pieces) {
		inst.Rest = rawMessage[pieces[i].Start:]
	}

	return inst
}

// handleOption processes one flag or option name, long-form or one character
// of a short bundle. valueTakenBy names the earlier option in the same short
// bundle that already consumed the following token, or is empty. When an
// option consumes a value, *i is advanced past the value token.
func (p *Parser) handleOption(
	def *Definition,
	optionName string,
	valueTakenBy string,
	i *int,
	pieces []Token,
	rawMessage string,
	inst *Instance,
) optionOutcome {
	if def.Flags != nil && def.Flags[optionName] {
		inst.Flags[optionName] = true
		return handledAsFlag
	}

	valueType, isOption := def.Options[optionName]
	if !isOption {
		if def.Flags == nil {
			// command allows ad hoc flags; it's one of those
			inst.Flags[optionName] = true
			return handledAsFlag
		}

		p.logger.Warn("unknown option",
			zap.String("option", optionName),
			zap.String("command", def.Name),
		)
		p.logger.Debug("offending command line", zap.String("raw_message", rawMessage))
		return optionFailed
	}

	if valueTakenBy != "" {
		// e.g. "-ab value" where both a and b take a value
		p.logger.Warn("option wants a value that another bundled option already consumed",
			zap.String("option", optionName),
			zap.String("consumed_by", valueTakenBy),
			zap.String("command", def.Name),
		)
		p.logger.Debug("offending command line", zap.String("raw_message", rawMessage))
		return optionFailed
	}

	if *i+1 >= len(pieces) {
		p.logger.Warn("option is missing an argument",
			zap.String("option", optionName),
			zap.String("command", def.Name),
		)
		p.logger.Debug("offending command line", zap.String("raw_message", rawMessage))
		return optionFailed
	}
	valueText := pieces[*i+1].Value

	var value Value
	switch valueType {
	case ValueTypeString:
		value = StringValue(valueText)
	case ValueTypeInteger:
		n, err := strconv.ParseInt(valueText, 10, 64)
		if err != nil {
			p.logger.Warn("option argument is not an integer",
				zap.String("argument", valueText),
				zap.String("option", optionName),
				zap.String("command", def.Name),
				zap.Error(err),
			)
			p.logger.Debug("offending command line", zap.String("raw_message", rawMessage))
			return optionFailed
		}
		value = IntegerValue(n)
	case ValueTypeFloat:
		f, err := strconv.ParseFloat(valueText, 64)
		if err != nil {
			p.logger.Warn("option argument is not a floating-point value",
				zap.String("argument", valueText),
				zap.String("option", optionName),
				zap.String("command", def.Name),
				zap.Error(err),
			)
			p.logger.Debug("offending command line", zap.String("raw_message", rawMessage))
			return optionFailed
		}
		value = FloatValue(f)
	case ValueTypeMultiString:
		// the one value type that accumulates across repeated occurrences
		if existing, ok := inst.Options[optionName]; ok {
			value = existing.appendString(valueText)
		} else {
			value = MultiStringValue(valueText)
		}
	}
	inst.Options[optionName] = value

	// skip over one more token (the value to this option)
	*i += 1

	return handledAsOption
}
