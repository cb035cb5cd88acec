package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Config      autoextract.Config
	Logger      *slog.Logger
	Extractor   autoextract.ListExtractor
	Fetcher     autoextract.Fetcher
	Runner      *batch.Runner
	Extractions autoextract.ExtractionService
	FeedWriter  autoextract.FeedWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to a YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Log pipeline activity to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract list items from pages"`
	Serve   ServeCmd   `cmd:"" help:"Serve list extraction over HTTP"`
	Runs    RunsCmd    `cmd:"" help:"Manage saved extraction runs"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Sources     []string `arg:"" help:"Pages to extract from: URLs, file paths, or - for stdin"`
	Format      string   `short:"f" default:"text" enum:"text,json,rss" help:"Output format"`
	Base        string   `help:"Base URL for resolving relative links"`
	Title       string   `default:"Extracted items" help:"Feed title for rss output and saved runs"`
	Save        bool     `help:"Persist the run for later inspection"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`

	MinNumber int     `default:"0" help:"Override the minimum row count for a list"`
	MinLength int     `default:"-1" help:"Override the minimum link text length in runes"`
	MaxLength int     `default:"0" help:"Override the maximum link text length in runes"`
	Threshold float64 `default:"-1" help:"Override the sibling similarity threshold"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

// RunsCmd groups the saved-run subcommands.
type RunsCmd struct {
	List   RunsListCmd   `cmd:"" help:"List saved extraction runs"`
	Show   RunsShowCmd   `cmd:"" help:"Show the items of a saved run"`
	Delete RunsDeleteCmd `cmd:"" help:"Delete a saved run"`
}

// RunsListCmd is the "runs list" subcommand.
type RunsListCmd struct {
	Source string `help:"Only show runs for this source URL"`
	Limit  int    `default:"0" help:"Maximum number of runs to show (0 for all)"`
}

// RunsShowCmd is the "runs show" subcommand.
type RunsShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// RunsDeleteCmd is the "runs delete" subcommand.
type RunsDeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
