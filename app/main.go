package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/cskov/ddo/app/clients/ddo"
	"github.com/cskov/ddo/app/clients/livesearch"
	"github.com/cskov/ddo/app/dictionary"
	"github.com/cskov/ddo/app/render"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
)

// Word is the positional lookup argument. Shell completions come from the
// livesearch endpoint; a failing endpoint completes to nothing rather than
// breaking the shell.
type Word string

// Complete implements flags.Completer
func (w Word) Complete(match string) []flags.Completion {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client := livesearch.NewClient(ctx, os.Getenv("DDO_BASE_URL"))
	suggestions, err := client.Suggest(match)
	if err != nil {
		return nil
	}
	completions := make([]flags.Completion, 0, len(suggestions))
	for _, s := range suggestions {
		completions = append(completions, flags.Completion{Item: s})
	}
	return completions
}

type Opts struct {
	All     bool          `long:"all" short:"a" description:"Render every matched entry in full"`
	JSON    bool          `long:"json" description:"Print entries as JSON instead of formatted text"`
	NoColor bool          `long:"no-color" env:"DDO_NO_COLOR" description:"Disable ANSI colors"`
	Debug   bool          `long:"debug" env:"DDO_DEBUG" description:"Enable debug logging"`
	BaseURL string        `long:"base-url" env:"DDO_BASE_URL" default:"https://ws.dsl.dk/ddo" description:"DDO web service base URL"`
	Timeout time.Duration `long:"timeout" env:"DDO_TIMEOUT" default:"10s" description:"HTTP request timeout"`
	Args    struct {
		Word Word `positional-arg-name:"word" required:"true" description:"Word to look up"`
	} `positional-args:"true"`
}

func main() {
	var opts Opts
	if _, err := flags.ParseArgs(&opts, os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
	// shell completion mode returns from ParseArgs without positionals
	if opts.Args.Word == "" {
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	word := string(opts.Args.Word)
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	client := ddo.NewClient(ctx, opts.BaseURL)
	log.Debug().Str("word", word).Str("base-url", opts.BaseURL).Msg("querying dictionary")
	document, err := client.Query(word)
	if err != nil {
		log.Fatal().Err(err).Str("word", word).Msg("failed to fetch dictionary data")
	}

	entries, err := dictionary.Parse(strings.NewReader(document), word)
	if err != nil {
		log.Fatal().Err(err).Str("word", word).Msg("failed to parse dictionary data")
	}
	log.Debug().Str("word", word).Int("entries", len(entries)).Msg("parsed dictionary data")

	if opts.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(entries); err != nil {
			log.Fatal().Err(err).Msg("failed to encode entries")
		}
		return
	}

	color := !opts.NoColor && isatty.IsTerminal(os.Stdout.Fd())
	renderer, err := render.New(color, opts.All)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize renderer")
	}
	if err := renderer.Render(os.Stdout, entries); err != nil {
		log.Fatal().Err(err).Msg("failed to render entries")
	}
}
