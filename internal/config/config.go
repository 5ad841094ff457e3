// Package config handles application configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"partsalert/internal/classify"
)

type rawConfig struct {
	FeedURL    string `long:"feed-url" env:"FEED_URL" default:"https://www.reddit.com/r/bapcsalescanada/.rss" description:"Deals feed (price rules)"`
	CHSFeedURL string `long:"chs-feed-url" env:"CHS_FEED_URL" default:"https://old.reddit.com/r/CanadianHardwareSwap/.rss" description:"Have/want swap feed (GPU watchlist)"`
	SeenFile   string `long:"seen-file" env:"SEEN_FILE" default:"seen_posts.txt" description:"Seen-listing store; .db/.sqlite selects SQLite"`
	LogFile    string `long:"log-file" env:"LOG_FILE" default:"run_log.txt" description:"Append-only run log"`
	LogLevel   string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"stderr log level (debug, info, warn, error)"`
	Timezone   string `long:"timezone" env:"TIMEZONE" default:"UTC" description:"Timezone for run log timestamps"`

	RoleMention string   `long:"role-mention" env:"ROLE_MENTION" description:"Role mention prepended to notifications, e.g. <@&123>"`
	NotifyURLs  []string `long:"notify-url" env:"APPRISE_URLS" env-delim:"," description:"Notification destination (repeatable, or comma-separated in env)"`

	GPULimit         int      `long:"gpu-limit" env:"GPU_PRICE_LIMIT" default:"2000" description:"Alert for [GPU] posts under this price"`
	MonitorLimit     int      `long:"monitor-limit" env:"MONITOR_PRICE_LIMIT" default:"1000" description:"Alert for monitors under this price"`
	CPULimit         int      `long:"cpu-limit" env:"CPU_PRICE_LIMIT" default:"500" description:"Alert for CPUs under this price"`
	CPUBundleLimit   int      `long:"cpu-bundle-limit" env:"CPU_BUNDLE_PRICE_LIMIT" default:"600" description:"Alert for CPU bundles under this price"`
	ComboLimit       int      `long:"combo-limit" env:"CPU_MOBO_BUNDLE_PRICE_LIMIT" default:"600" description:"Alert for CPU+motherboard combos under this price"`
	MotherboardLimit int      `long:"motherboard-limit" env:"MOTHERBOARD_PRICE_LIMIT" default:"300" description:"Alert for motherboards under this price"`
	GPUKeyword       string   `long:"gpu-keyword" env:"GPU_KEYWORD" default:"[GPU]" description:"Tag marking GPU posts"`
	CPUModels        []string `long:"cpu-model" env:"CPU_MODELS" env-delim:"," default:"5800x3d" default:"7600x3d" default:"7800x3d" description:"Known CPU model (repeatable)"`
	WatchlistFile    string   `long:"watchlist" env:"WATCHLIST_FILE" description:"YAML file replacing the built-in GPU watchlist"`

	UserAgent    string        `long:"user-agent" env:"USER_AGENT" default:"partsalert/1.0" description:"User-Agent for feed requests"`
	FetchTimeout time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30s" description:"Per-feed request timeout"`

	Test           bool   `long:"test" description:"Send a test notification and exit"`
	DryRun         bool   `long:"dry-run" description:"Print matches instead of sending notifications"`
	DryRunReadOnly bool   `long:"dry-run-readonly" description:"With --dry-run, do not persist the seen set"`
	Cron           string `long:"cron" env:"CRON_SCHEDULE" description:"Repeat runs on this 5-field cron schedule instead of exiting"`
}

// Config holds the application configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	FeedURL    string
	CHSFeedURL string
	SeenFile   string
	LogFile    string
	LogLevel   string
	Timezone   string
	Location   *time.Location

	RoleMention string
	NotifyURLs  []string

	Thresholds    classify.Thresholds
	WatchlistFile string
	Watchlist     classify.Watchlist

	UserAgent    string
	FetchTimeout time.Duration

	Test           bool
	DryRun         bool
	DryRunReadOnly bool
	Cron           string
}

// Load reads a .env file if present, then parses args and the environment.
// It returns a nil Config without error when --help was requested.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(args)
}

func parse(args []string) (*Config, error) {
	var raw rawConfig

	parser := flags.NewParser(&raw, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	watchlist := classify.DefaultWatchlist()
	if raw.WatchlistFile != "" {
		w, err := LoadWatchlist(raw.WatchlistFile)
		if err != nil {
			return nil, err
		}
		watchlist = w
	}

	return &Config{
		FeedURL:     raw.FeedURL,
		CHSFeedURL:  raw.CHSFeedURL,
		SeenFile:    raw.SeenFile,
		LogFile:     raw.LogFile,
		LogLevel:    raw.LogLevel,
		Timezone:    raw.Timezone,
		Location:    ResolveLocation(raw.Timezone),
		RoleMention: strings.TrimSpace(raw.RoleMention),
		NotifyURLs:  cleanList(raw.NotifyURLs),
		Thresholds: classify.Thresholds{
			GPULimit:         raw.GPULimit,
			MonitorLimit:     raw.MonitorLimit,
			CPULimit:         raw.CPULimit,
			CPUBundleLimit:   raw.CPUBundleLimit,
			ComboLimit:       raw.ComboLimit,
			MotherboardLimit: raw.MotherboardLimit,
			GPUKeyword:       raw.GPUKeyword,
			CPUModels:        lowerList(cleanList(raw.CPUModels)),
		},
		WatchlistFile:  raw.WatchlistFile,
		Watchlist:      watchlist,
		UserAgent:      raw.UserAgent,
		FetchTimeout:   raw.FetchTimeout,
		Test:           raw.Test,
		DryRun:         raw.DryRun,
		DryRunReadOnly: raw.DryRunReadOnly,
		Cron:           strings.TrimSpace(raw.Cron),
	}, nil
}

// ResolveLocation loads the named timezone, falling back to UTC.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PersistSeen reports whether this run should write the seen set back.
// Dry runs do, unless --dry-run-readonly is set.
func (c *Config) PersistSeen() bool {
	return !c.DryRun || !c.DryRunReadOnly
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func lowerList(in []string) []string {
	for i, s := range in {
		in[i] = strings.ToLower(s)
	}
	return in
}
