// Package main provides a local REPL for exercising the command recognizer.
// It reads chat lines from stdin and prints each parsed command instance as
// YAML, using the same configuration and catalog as the bot itself.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/chatbot/internal/command"
	"github.com/cory-johannsen/chatbot/internal/config"
	"github.com/cory-johannsen/chatbot/internal/observability"
)

// renderedInstance is the YAML shape printed for each parsed command.
type renderedInstance struct {
	Name           string         `yaml:"name"`
	Flags          []string       `yaml:"flags,omitempty"`
	Options        map[string]any `yaml:"options,omitempty"`
	Args           []string       `yaml:"args,omitempty"`
	Rest           string         `yaml:"rest,omitempty"`
	PrecedingQuote string         `yaml:"preceding_quote,omitempty"`
}

func render(inst *command.Instance) renderedInstance {
	out := renderedInstance{
		Name:           inst.Name,
		Args:           inst.Args,
		Rest:           inst.Rest,
		PrecedingQuote: inst.PrecedingQuote,
	}

	for flagName := range inst.Flags {
		out.Flags = append(out.Flags, flagName)
	}
	sort.Strings(out.Flags)

	if len(inst.Options) > 0 {
		out.Options = make(map[string]any, len(inst.Options))
		for name, value := range inst.Options {
			switch value.Type() {
			case command.ValueTypeString:
				s, _ := value.AsString()
				out.Options[name] = s
			case command.ValueTypeInteger:
				n, _ := value.AsInteger()
				out.Options[name] = n
			case command.ValueTypeFloat:
				f, _ := value.AsFloat()
				out.Options[name] = f
			case command.ValueTypeMultiString:
				items, _ := value.AsMultiString()
				out.Options[name] = items
			}
		}
	}
	return out
}

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scopeName := flag.String("scope", "channel", "message scope: channel or private")
	fromBot := flag.Bool("from-bot", false, "treat input lines as sent by another bot")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var scope command.Scope
	switch *scopeName {
	case "channel":
		scope = command.ScopeChannel
	case "private":
		scope = command.ScopePrivate
	default:
		logger.Fatal("unknown scope", zap.String("scope", *scopeName))
	}

	entries, err := command.LoadCatalogFromFile(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("loading command catalog", zap.Error(err))
	}

	registry := command.NewRegistry(cfg.Commands.CaseFold)
	if err := command.RegisterCatalog(registry, entries); err != nil {
		logger.Fatal("registering command catalog", zap.Error(err))
	}
	logger.Info("command catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("commands", len(entries)),
	)

	recognizer := command.NewRecognizer(cfg.Commands.CommandConfiguration(), registry, logger)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		inst := recognizer.Recognize(scope, scanner.Text(), *fromBot)
		if inst == nil {
			fmt.Println("# no command recognized")
			continue
		}
		encoded, err := yaml.Marshal(render(inst))
		if err != nil {
			logger.Error("encoding instance", zap.Error(err))
			continue
		}
		fmt.Print(string(encoded))
		fmt.Println("---")
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("reading stdin", zap.Error(err))
	}
}
