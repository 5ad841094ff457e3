package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"partsalert/internal/classify"
	"partsalert/internal/config"
	"partsalert/internal/model"
	"partsalert/internal/notify"
	"partsalert/internal/storage"
)

// ListingFetcher retrieves the listings of a feed.
type ListingFetcher interface {
	FetchListings(ctx context.Context, url string) ([]model.Listing, error)
}

type source struct {
	model.Source
	classifier classify.Classifier
}

// Runner performs complete runs: load the seen set, scan every source,
// report, then persist.
type Runner struct {
	store    storage.Storage
	fetcher  ListingFetcher
	notifier notify.Dispatcher
	scanner  *Scanner
	sources  []source

	roleMention string
	dryRun      bool
	persistSeen bool

	out     io.Writer
	log     *slog.Logger
	journal *slog.Logger
}

// New creates a Runner for cfg. Console output goes to stdout.
func New(cfg *config.Config, store storage.Storage, f ListingFetcher, n notify.Dispatcher, log, journal *slog.Logger) *Runner {
	return &Runner{
		store:       store,
		fetcher:     f,
		notifier:    n,
		scanner:     NewScanner(log),
		sources:     sourcesFor(cfg),
		roleMention: cfg.RoleMention,
		dryRun:      cfg.DryRun,
		persistSeen: cfg.PersistSeen(),
		out:         os.Stdout,
		log:         log,
		journal:     journal,
	}
}

// SetOutput overrides where the console summary is written.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

func sourcesFor(cfg *config.Config) []source {
	var out []source
	if cfg.FeedURL != "" {
		out = append(out, source{
			Source:     model.Source{Name: "bapcsalescanada", URL: cfg.FeedURL, Kind: model.SourcePrimary},
			classifier: classify.NewPrimary(cfg.Thresholds),
		})
	}
	if cfg.CHSFeedURL != "" {
		out = append(out, source{
			Source:     model.Source{Name: "canadianhardwareswap", URL: cfg.CHSFeedURL, Kind: model.SourceSecondary},
			classifier: classify.NewSecondary(cfg.Watchlist),
		})
	}
	return out
}

// Run performs one run. A fetch failure aborts before anything is reported
// or persisted. A dispatch failure is returned after the seen set is saved.
func (r *Runner) Run(ctx context.Context) error {
	r.journal.Info("run started", "dry_run", r.dryRun)

	seen, err := r.store.Load(ctx)
	if err != nil {
		r.journal.Error("run failed", "error", err)
		return fmt.Errorf("load seen set: %w", err)
	}

	matches := &Collector{}
	for _, src := range r.sources {
		listings, err := r.fetcher.FetchListings(ctx, src.URL)
		if err != nil {
			r.journal.Error("run failed", "source", src.Name, "error", err)
			return fmt.Errorf("fetch %s feed: %w", src.Name, err)
		}
		n := r.scanner.ScanSource(src.Source, listings, src.classifier, seen, matches)
		r.log.Info("scanned feed", "source", src.Name, "listings", len(listings), "matches", n)
	}

	notifyErr := r.report(ctx, matches.Matches())

	if !r.persistSeen {
		r.log.Info("seen set left untouched", "marked", len(seen.Added()))
		return notifyErr
	}
	if err := r.store.Persist(ctx, seen); err != nil {
		return errors.Join(notifyErr, fmt.Errorf("persist seen set: %w", err))
	}
	r.log.Debug("seen set saved", "size", seen.Len(), "added", len(seen.Added()))
	return notifyErr
}

func (r *Runner) report(ctx context.Context, matches []model.Match) error {
	if len(matches) == 0 {
		r.journal.Info("no new deals", "dry_run", r.dryRun)
	} else {
		r.journal.Info("deals found", "count", len(matches), "dry_run", r.dryRun)
	}

	if r.dryRun {
		notify.WriteDryRun(r.out, matches)
		return nil
	}
	if len(matches) == 0 {
		fmt.Fprintln(r.out, "No new deals found matching filters.")
		return nil
	}

	if err := r.notifier.Notify(ctx, notify.FormatMessage(matches, r.roleMention)); err != nil {
		r.log.Error("send alerts", "count", len(matches), "error", err)
		return fmt.Errorf("send alerts: %w", err)
	}
	fmt.Fprintf(r.out, "Sent %d alert(s)\n", len(matches))
	return nil
}

// SendTest sends the test notification. Feeds and the seen set are untouched.
func (r *Runner) SendTest(ctx context.Context) error {
	if err := r.notifier.Notify(ctx, notify.FormatTest(r.roleMention)); err != nil {
		return fmt.Errorf("send test notification: %w", err)
	}
	r.journal.Info("test notification sent")
	fmt.Fprintln(r.out, "Test notification sent")
	return nil
}
