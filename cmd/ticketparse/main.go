// Command ticketparse parses one e-ticket receipt and prints the canonical
// record as JSON.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"eticket-service/internal/infrastructure/config"
	"eticket-service/pkg/eticket"
)

type options struct {
	Text      string   `long:"text" value-name:"FILE" description:"Plain-text rendition of the receipt, - for stdin"`
	HTML      string   `long:"html" value-name:"FILE" description:"HTML rendition of the receipt"`
	Rules     string   `long:"rules" env:"PARSER_RULES_FILE" value-name:"FILE" description:"YAML parser rules"`
	Whitelist []string `long:"whitelist" value-name:"NAME" description:"Given name that must survive name cleanup (repeatable)"`
	Legacy    bool     `long:"legacy" description:"Print the legacy field map instead of the canonical record"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, "ticketparse:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if opts.Text == "" && opts.HTML == "" {
		return errors.New("one of --text or --html is required")
	}

	raw, err := readInput(opts, stdin)
	if err != nil {
		return err
	}

	var rules *config.ParserRules
	if opts.Rules != "" {
		if rules, err = config.LoadParserRules(opts.Rules); err != nil {
			return err
		}
	}
	cfg := (&config.Config{FirstNameWhitelist: opts.Whitelist}).ParserConfig(rules)

	result := eticket.NewParser(cfg).Parse(raw)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if opts.Legacy {
		return enc.Encode(result.Legacy)
	}
	return enc.Encode(result.Ticket)
}

func readInput(opts options, stdin io.Reader) (eticket.RawInput, error) {
	var raw eticket.RawInput

	if opts.Text != "" {
		text, err := readSource(opts.Text, stdin)
		if err != nil {
			return raw, err
		}
		raw.PlainText = text
	}
	if opts.HTML != "" {
		html, err := readSource(opts.HTML, stdin)
		if err != nil {
			return raw, err
		}
		raw.HTMLText = html
	}
	return raw, nil
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
