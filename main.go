package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/qyinm/bustui/api"
	"github.com/qyinm/bustui/browse"
	"github.com/qyinm/bustui/config"
	"github.com/qyinm/bustui/types"
	"github.com/qyinm/bustui/ui"
)

var version = "dev"

// Args holds the command line. Fields are pre-filled from BUSTUI_* so that
// flags override the environment.
type Args struct {
	ID          string        `arg:"positional" help:"movie id; in plain mode print its detail and magnets"`
	Category    string        `arg:"-c,--category" help:"listing category: normal or uncensored"`
	Search      string        `arg:"-s,--search" help:"start with the results of a keyword search"`
	OnlyMagnets bool          `arg:"-m,--only-magnets" help:"hide movies known to have no magnet"`
	Pages       int           `arg:"-p,--pages" help:"pages to print in plain mode"`
	Plain       bool          `arg:"--plain" help:"print results instead of starting the TUI"`
	API         string        `arg:"--api" help:"movie API base URL"`
	Proxy       string        `arg:"--proxy" help:"HTTP proxy URL"`
	Timeout     time.Duration `arg:"--timeout" help:"request timeout, 0 disables it"`
	LogFile     string        `arg:"--log-file" help:"log file, - to disable"`
}

func (Args) Description() string {
	return "bustui browses the movie catalog in the terminal.\n"
}

func (Args) Version() string {
	return "bustui " + version
}

func main() {
	env := config.Load()
	args := Args{
		Category: types.Normal.String(),
		Pages:    1,
		API:      env.Client.BaseURL,
		Proxy:    env.Client.ProxyURL,
		Timeout:  env.Client.Timeout,
		LogFile:  env.Log.File,
	}
	p := arg.MustParse(&args)

	category, ok := types.ParseCategory(args.Category)
	if !ok {
		p.Fail(fmt.Sprintf("unknown category %q", args.Category))
	}

	env.Client.BaseURL = args.API
	env.Client.ProxyURL = args.Proxy
	env.Client.Timeout = args.Timeout
	env.Log.File = args.LogFile

	logger, closer, err := env.Log.OpenLog("bustui: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	source, err := env.Client.NewClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("starting %s against %s", version, source.BaseURL())

	mode := types.ListingMode(category)
	if q := api.NormalizeKeyword(args.Search); q != "" {
		mode = types.SearchMode(q)
	}

	if args.Plain || args.ID != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		if err := runPlain(context.Background(), os.Stdout, source, logger, args, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			closer.Close()
			os.Exit(1)
		}
		return
	}

	model := ui.NewModel(source, ui.Options{
		Category:    category,
		Query:       mode.Query(),
		OnlyMagnets: args.OnlyMagnets,
		Logger:      logger,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}

// runPlain drives the same browse controllers as the TUI, synchronously.
func runPlain(ctx context.Context, w io.Writer, source types.MovieSource, logger *log.Logger, args Args, mode types.Mode) error {
	if id := strings.TrimSpace(args.ID); id != "" {
		return printDetail(ctx, w, source, logger, id)
	}

	pages := args.Pages
	if pages < 1 {
		pages = 1
	}
	l := browse.NewList(logger)
	req := l.ChangeMode(mode)
	for fetched := 1; ; fetched++ {
		l.Resolve(req.Do(ctx, source))
		if err := l.Err(); err != nil {
			if l.Len() == 0 {
				return err
			}
			fmt.Fprintf(os.Stderr, "warning: page %d: %v\n", l.Page()+1, err)
			break
		}
		next, ok := l.LoadNext()
		if fetched >= pages || !ok {
			break
		}
		req = next
	}

	for _, m := range browse.Filter(l.Records(), args.OnlyMagnets) {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			runewidth.FillRight(m.ID(), 12),
			runewidth.FillRight(m.Date(), 10),
			runewidth.FillRight(m.HasMagnet().String(), 7),
			m.Name())
	}
	if l.HasMore() {
		fmt.Fprintf(w, "-- more: --pages %d\n", l.Page()+1)
	}
	return nil
}

func printDetail(ctx context.Context, w io.Writer, source types.MovieSource, logger *log.Logger, id string) error {
	d := browse.NewDetail(logger)
	d.Load(ctx, source, types.NewMovie(id, "", "", "", nil, types.Unknown))
	detail, ok := d.Detail()
	if !ok {
		return d.Err()
	}

	m := detail.Movie()
	fmt.Fprintf(w, "%s  %s\n%s\n", m.ID(), m.Date(), m.Name())
	for _, f := range [][2]string{
		{"Director", detail.Director()},
		{"Studio", detail.Studio()},
		{"Label", detail.Label()},
		{"Genres", strings.Join(detail.Genres(), ", ")},
	} {
		if f[1] != "" {
			fmt.Fprintf(w, "%-9s %s\n", f[0]+":", f[1])
		}
	}
	if cover := d.Cover(); cover != "" {
		fmt.Fprintf(w, "%-9s %s\n", "Cover:", api.ProxyImageURL(cover, api.DefaultImageWidth))
	}

	switch {
	case !detail.HasMagnetKeys():
		fmt.Fprintln(w, "Magnets:  no magnet lookup for this title")
	case d.MagnetErr() != nil:
		fmt.Fprintf(w, "Magnets:  failed: %v\n", d.MagnetErr())
	default:
		magnets := d.Magnets()
		fmt.Fprintf(w, "Magnets:  %d\n", len(magnets))
		for _, mg := range magnets {
			fmt.Fprintf(w, "  %s  %s\n  %s\n", runewidth.FillLeft(mg.Size(), 9), mg.Name(), mg.Link())
		}
	}
	for _, link := range api.WatchLinks(m.ID()) {
		fmt.Fprintf(w, "%-9s %s\n", link.Site+":", link.URL)
	}
	return nil
}
