package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	idstring "github.com/goliatone/go-idstring"
	"github.com/goliatone/go-idstring/pkg/document"
	"github.com/goliatone/go-idstring/pkg/orchestrator"
	"github.com/goliatone/go-idstring/pkg/rules"
)

func main() {
	source := flag.String("source", "", "SPL document path or URL")
	templateName := flag.String("template", "protein_identifier", "identifier template to render")
	rulesPath := flag.String("rules", "", "rule file overriding the embedded templates")
	legacy := flag.Bool("legacy", false, "treat the rule set as legacy filter-syntax rules")
	output := flag.String("output", "", "output file (stdout if empty)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall generation timeout")
	flag.Parse()

	src, err := parseSource(*source)
	if err != nil {
		log.Fatalf("Invalid source %q: %v", *source, err)
	}

	var options []orchestrator.Option
	if src.Kind() == document.SourceKindURL {
		options = append(options, orchestrator.WithLoader(
			idstring.NewLoader(document.WithHTTPFallback(*timeout)),
		))
	}
	switch {
	case *legacy:
		definitions, err := legacyDefinitions(*rulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
		options = append(options, orchestrator.WithLegacyRules(definitions))
	case *rulesPath != "":
		definitions, err := rules.Load(*rulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
		options = append(options, orchestrator.WithRules(definitions))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gen := orchestrator.New(options...)

	identifier, err := gen.Generate(ctx, orchestrator.Request{
		Source:   src,
		Template: *templateName,
	})
	if err != nil {
		log.Fatalf("Failed to generate identifier: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(identifier+"\n"), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Identifier written to %s\n", *output)
	} else {
		fmt.Println(identifier)
	}
}

func legacyDefinitions(path string) (map[string]string, error) {
	if path == "" {
		return rules.Legacy()
	}
	return rules.Load(path)
}

func parseSource(raw string) (document.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, errors.New("source is required")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return document.SourceFromURL(path)
	}
	return document.SourceFromFile(path), nil
}
