package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/recipes/internal/formatter"
	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/nav"
	"github.com/desertthunder/recipes/internal/pages"
	"github.com/desertthunder/recipes/internal/query"
	"github.com/desertthunder/recipes/internal/shared"
	"github.com/desertthunder/recipes/internal/tasks"
	"github.com/urfave/cli/v3"
)

type showOpts struct {
	format formatter.Format
	debug  bool
	save   string
}

// Show summarizes the URLs given as arguments. Several URLs are summarized
// concurrently; failures are reported per URL.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	urls := cmd.Args().Slice()
	if len(urls) == 0 {
		return fmt.Errorf("%w: at least one url is required", shared.ErrMissingArgument)
	}
	for _, u := range urls {
		if !nav.IsURL(u) {
			return fmt.Errorf("%w: %q", shared.ErrInvalidURL, u)
		}
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	if format == formatter.CSV {
		return fmt.Errorf("%w: csv is only available for listings", shared.ErrInvalidFlag)
	}
	opts := showOpts{format: format, debug: cmd.Bool("debug"), save: cmd.String("save")}

	hint := cmd.String("title-hint")
	if hint != "" && len(urls) > 1 {
		return fmt.Errorf("%w: --title-hint applies to a single url", shared.ErrInvalidFlag)
	}

	if len(urls) == 1 {
		r.logger.Debug("summarizing", "url", urls[0], "title_hint", hint)

		res, err := r.client.Summarize(ctx, urls[0], hint)
		if err != nil {
			return err
		}
		return r.printSummary(urls[0], hint, res, opts)
	}

	prog := make(chan tasks.ProgressUpdate, 2*len(urls)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			if update.Phase == tasks.Failed {
				r.logger.Warn(update.Message, "step", update.Step, "total", update.Total)
				continue
			}
			r.logger.Info(update.Message, "step", update.Step, "total", update.Total)
		}
	}()

	results, err := tasks.SummarizeAll(ctx, r.client, urls, tasks.BatchOpts{NumWorkers: cmd.Int("workers")}, prog)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	failed := 0
	for i, res := range results {
		if i > 0 {
			r.writePlain("\n")
		}
		if res.Err != nil {
			failed++
			r.writePlain("%s\n%s\n", res.URL, pages.ErrorText(res.Err))
			continue
		}
		if err := r.printSummary(res.URL, "", res.Result, opts); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d urls could not be summarized", shared.ErrAPIRequest, failed, len(urls))
	}
	return nil
}

func (r *Runner) printSummary(target, hint string, res *models.SummaryResult, opts showOpts) error {
	route, err := nav.Parse(nav.ShowPath(target, hint))
	if err != nil {
		return err
	}
	show := pages.NewShow(route, query.Result{Status: query.Success, Data: res})

	if opts.debug {
		return r.writePlain("%s\n", show.DebugDump())
	}

	if opts.save != "" && show.State == pages.Summarized {
		path, err := formatter.WriteMarkdownExport(show.URL, show.Summary, opts.save)
		if err != nil {
			return err
		}
		r.logger.Info("saved summary", "path", path)
	}

	switch {
	case opts.format == formatter.JSON:
		return r.writeJSON(show.Summary, true)
	case show.State != pages.Summarized:
		return r.writePlain("%s\n%s\n%s\n", show.Title(), show.Message(), show.URL)
	case opts.format == formatter.Markdown:
		return r.writeBytes(formatter.SummaryToMarkdown(show.URL, show.Summary))
	default:
		return r.writeBytes(formatter.SummaryToText(show.URL, show.Summary))
	}
}

// Recent lists recently summarized pages.
func (r *Runner) Recent(ctx context.Context, cmd *cli.Command) error {
	return r.printList(ctx, cmd, nav.RecentPath, cmd.Int("count"))
}

// Favorites lists the most visited pages.
func (r *Runner) Favorites(ctx context.Context, cmd *cli.Command) error {
	return r.printList(ctx, cmd, nav.FavoritesPath, cmd.Int("count"))
}

// Search lists pages matching the arguments joined as one term.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	term := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if term == "" {
		return fmt.Errorf("%w: search term is required", shared.ErrMissingArgument)
	}
	return r.printList(ctx, cmd, nav.SearchPath(term), 0)
}

func (r *Runner) printList(ctx context.Context, cmd *cli.Command, location string, count int) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	if format == formatter.Markdown {
		return fmt.Errorf("%w: markdown is only available for summaries", shared.ErrInvalidFlag)
	}
	if count <= 0 {
		count = r.config.API.ListCount
	}

	route, err := nav.Parse(location)
	if err != nil {
		return err
	}
	l, ok := pages.ListFor(route, count)
	if !ok {
		return fmt.Errorf("%w: %s is not a listing", shared.ErrInvalidInput, location)
	}

	r.logger.Debug("fetching list", "path", l.Path)
	entries, err := r.client.List(ctx, l.Path)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.BookmarkEntry{}
	}
	l = l.WithResult(query.Result{Status: query.Success, Data: entries})

	switch format {
	case formatter.JSON:
		return r.writeJSON(l.Entries, true)
	case formatter.CSV:
		data, err := formatter.EntriesToCSV(l.Entries)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	default:
		r.writePlainHeader(l.Heading)
		if l.Empty() {
			return r.writePlain("Nothing here yet.\n")
		}
		return r.writeBytes(formatter.EntriesToText(l.Entries))
	}
}

// Open resolves free text exactly like the TUI navigation box.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	location := nav.Resolve(text)
	if cmd.Bool("launch") {
		return r.runTUI(ctx, location)
	}
	return r.writePlain("%s\n", location)
}

// Share opens shared content. The TUI redirects the share to its summary page.
func (r *Runner) Share(ctx context.Context, cmd *cli.Command) error {
	values := url.Values{}
	for _, name := range []string{"text", "title"} {
		if v := cmd.String(name); v != "" {
			values.Set(name, v)
		}
	}

	if cmd.Bool("print") {
		return r.writePlain("%s\n", nav.ResolveShare(values))
	}
	return r.runTUI(ctx, nav.SharePath(values))
}

// Hit records a visit to the URL argument.
func (r *Runner) Hit(ctx context.Context, cmd *cli.Command) error {
	target := strings.TrimSpace(cmd.StringArg("url"))
	if !nav.IsURL(target) {
		return fmt.Errorf("%w: %q", shared.ErrInvalidURL, target)
	}

	if err := r.client.Hit(ctx, target); err != nil {
		return err
	}
	return r.writePlain("✓ Recorded visit to %s\n", nav.Hostname(target))
}

// APIGet makes a direct authenticated GET request to the backend.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}
	if err := r.writeBytes(resp.Body); err != nil {
		return err
	}
	return r.writePlain("\n")
}
