// Package command provides the chat-bot command core: the offset-preserving
// tokenizer, the command-line parser that binds tokens against a command
// definition, the live command registry, and the YAML catalog loader.
package command

// Behaviors toggles parsing and dispatch behavior for a single command.
type Behaviors struct {
	// NoArgumentParsing skips all option and positional parsing; the entire
	// post-command text is delivered verbatim as Rest.
	NoArgumentParsing bool
	// RestAsArgs removes the positional-argument ceiling: every plain token
	// becomes a positional argument and Rest stays empty.
	RestAsArgs bool
	// AcceptFromBots allows the command to be triggered by other bots.
	AcceptFromBots bool
	// AllowPrecedingQuote allows the command to follow a quoted message.
	AllowPrecedingQuote bool
}

// Definition declares a command's name, arity, and flag/option schema.
type Definition struct {
	// Name is the command word, without the command prefix.
	Name string
	// Usage is the short usage line shown in help output.
	Usage string
	// Description explains what the command does.
	Description string
	// Flags is the closed set of valid boolean flag names. A nil map means
	// the command accepts arbitrary ad hoc flags.
	Flags map[string]bool
	// Options maps option names to the type their value text must parse as.
	Options map[string]ValueType
	// ArgCount is the exact number of required positional arguments. When
	// Behaviors.RestAsArgs is set it is only a lower bound.
	ArgCount int
	// Behaviors adjusts how the command is parsed and dispatched.
	Behaviors Behaviors
}

// CopyNamed returns a deep copy of the definition under a different name,
// for registering aliases.
//
// Postcondition: Returns a Definition sharing no mutable state with d.
func (d *Definition) CopyNamed(name string) *Definition {
	clone := *d
	clone.Name = name
	if d.Flags != nil {
		clone.Flags = make(map[string]bool, len(d.Flags))
		for flag, valid := range d.Flags {
			clone.Flags[flag] = valid
		}
	}
	if d.Options != nil {
		clone.Options = make(map[string]ValueType, len(d.Options))
		for option, typ := range d.Options {
			clone.Options[option] = typ
		}
	}
	return &clone
}

// Instance is one successfully parsed invocation of a command. It is built
// exactly once per parse and not modified afterwards.
type Instance struct {
	// Name is the name of the matched command.
	Name string
	// Flags is the set of boolean flags present on the command line.
	Flags map[string]bool
	// Options holds the typed value of each option that appeared.
	Options map[string]Value
	// Args are the positional arguments, in order.
	Args []string
	// Rest is the verbatim trailing portion of the message beyond all
	// recognized flags, options, and positional arguments. Original
	// whitespace and quoting are preserved.
	Rest string
	// PrecedingQuote is the quote marker stripped from the front of the
	// message, or the empty string when there was none.
	PrecedingQuote string
}
