// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/citely/internal/core/citation"
	"github.com/taibuivan/citely/internal/core/reading"
	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/internal/platform/apperr"
	"github.com/taibuivan/citely/internal/platform/config"
	"github.com/taibuivan/citely/internal/platform/remote"
	"github.com/taibuivan/citely/pkg/convert"
)

var (
	errServiceDown    = errors.New("citation service is not reachable")
	errSourceNotFound = errors.New("no source with id")
)

// app holds the persistent flags and builds services on demand, after flag
// parsing has settled the base URL and timeout.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	baseURL string
	timeout time.Duration
}

func (a *app) client() *remote.Client {
	return remote.NewClient(a.baseURL, remote.WithTimeout(a.timeout), remote.WithLogger(a.logger))
}

func (a *app) sources() *source.Service {
	return source.NewService(source.NewRemoteRepository(a.client()), a.logger)
}

func (a *app) readings() *reading.Service {
	return reading.NewService(a.sources(), a.client(), a.cfg.HealthTimeout, a.logger)
}

func (a *app) citations() *citation.Service {
	return citation.NewService(citation.NewRemoteGenerator(a.client()), a.logger)
}

func newRootCommand(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	a := &app{cfg: cfg, logger: logger}

	root := &cobra.Command{
		Use:           "cite",
		Short:         "Operate the citation service from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&a.baseURL, "base-url", cfg.ServiceURL, "citation service base URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", cfg.RequestTimeout, "per-request timeout")

	root.AddCommand(
		newHealthCommand(a),
		newReadingsCommand(a),
		newGenerateCommand(a),
		newSourceCommand(a),
	)

	return root
}

// # health

func newHealthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the citation service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.readings().HealthCheck(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "citation service at %s: disconnected\n", a.baseURL)
				return errServiceDown
			}
			fmt.Fprintf(cmd.OutOrStdout(), "citation service at %s: connected\n", a.baseURL)
			return nil
		},
	}
}

// # readings

func newReadingsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "readings",
		Short: "Populate a fresh working set and list it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := reading.NewWorkingSet()
			a.readings().Populate(cmd.Context(), ws)

			renderSources(cmd.OutOrStdout(), ws.Readings())
			fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", ws.State())
			return nil
		},
	}
}

// # generate

func newGenerateCommand(a *app) *cobra.Command {
	var (
		style    string
		backfill bool
	)

	cmd := &cobra.Command{
		Use:   "generate <source-id>",
		Short: "Generate a citation for a registered source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			normalized := citation.NormalizeStyle(style)
			text, err := a.citations().GenerateCitation(cmd.Context(), id, normalized.String(), backfill)
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New(citation.FailureMessage(normalized))
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", citation.DefaultStyle.String(), "citation style (MLA, APA, CHICAGO)")
	cmd.Flags().BoolVar(&backfill, "backfill", citation.DefaultBackfill, "let the service fill missing metadata")

	return cmd
}

// # source

func newSourceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Register and inspect sources",
	}
	cmd.AddCommand(newSourceGetCommand(a), newSourceAddCommand(a))
	return cmd
}

func newSourceGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a source by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			found, err := a.sources().GetSource(cmd.Context(), id)
			if apperr.HasCode(err, "NOT_FOUND") {
				return fmt.Errorf("%w: %d", errSourceNotFound, id)
			}
			if err != nil {
				return err
			}

			renderSource(cmd.OutOrStdout(), *found)
			return nil
		},
	}
}

// sourceFlags holds every flag of `source add`. Optional values are only
// forwarded when the flag was set on the command line.
type sourceFlags struct {
	title, author string

	year int

	publisher, isbn string

	journal, doi, volume, issue, pages string

	platform, url string
	duration      int
}

func newSourceAddCommand(a *app) *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:       "add book|article|video",
		Short:     "Register a new source",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"book", "article", "video"},
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := buildSource(cmd, strings.ToUpper(args[0]), flags)
			if err != nil {
				return err
			}

			created, err := a.sources().CreateSource(cmd.Context(), src)
			if err != nil {
				return err
			}

			renderSource(cmd.OutOrStdout(), *created)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.title, "title", "", "title (required)")
	f.StringVar(&flags.author, "author", "", "author (required)")
	f.IntVar(&flags.year, "year", 0, "publication year")
	f.StringVar(&flags.publisher, "publisher", "", "book publisher")
	f.StringVar(&flags.isbn, "isbn", "", "book ISBN")
	f.StringVar(&flags.journal, "journal", "", "article journal")
	f.StringVar(&flags.doi, "doi", "", "article DOI")
	f.StringVar(&flags.volume, "volume", "", "article volume")
	f.StringVar(&flags.issue, "issue", "", "article issue")
	f.StringVar(&flags.pages, "pages", "", "article pages")
	f.StringVar(&flags.platform, "platform", "", "video platform")
	f.StringVar(&flags.url, "url", "", "video URL")
	f.IntVar(&flags.duration, "duration", 0, "video duration in seconds")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")

	return cmd
}

// buildSource maps flags onto the variant's fields. Flags that belong to a
// different variant are rejected rather than silently dropped.
func buildSource(cmd *cobra.Command, kind string, flags sourceFlags) (source.Source, error) {
	changed := cmd.Flags().Changed

	str := func(name, value string) *string {
		if changed(name) {
			return &value
		}
		return nil
	}
	num := func(name string, value int) *int {
		if changed(name) {
			return &value
		}
		return nil
	}

	allowed := map[source.Type][]string{
		source.TypeBook:    {"publisher", "isbn"},
		source.TypeArticle: {"journal", "doi", "volume", "issue", "pages"},
		source.TypeVideo:   {"platform", "url", "duration"},
	}
	sourceType := source.Type(kind)
	for other, names := range allowed {
		if other == sourceType {
			continue
		}
		for _, name := range names {
			if changed(name) {
				return source.Source{}, fmt.Errorf("--%s does not apply to %s sources", name, strings.ToLower(kind))
			}
		}
	}

	switch sourceType {
	case source.TypeBook:
		return source.BookFields{
			Title: flags.title, Author: flags.author, Year: num("year", flags.year),
			Publisher: str("publisher", flags.publisher),
			ISBN:      str("isbn", flags.isbn),
		}.Source(), nil
	case source.TypeArticle:
		return source.ArticleFields{
			Title: flags.title, Author: flags.author, Year: num("year", flags.year),
			Journal: str("journal", flags.journal),
			DOI:     str("doi", flags.doi),
			Volume:  str("volume", flags.volume),
			Issue:   str("issue", flags.issue),
			Pages:   str("pages", flags.pages),
		}.Source(), nil
	case source.TypeVideo:
		return source.VideoFields{
			Title: flags.title, Author: flags.author, Year: num("year", flags.year),
			Platform: str("platform", flags.platform),
			URL:      str("url", flags.url),
			Duration: num("duration", flags.duration),
		}.Source(), nil
	}

	return source.Source{}, fmt.Errorf("unknown source type %q", kind)
}

func parseID(raw string) (int64, error) {
	id, ok := convert.ParseID(raw)
	if !ok {
		return 0, fmt.Errorf("invalid source id %q", raw)
	}
	return id, nil
}
