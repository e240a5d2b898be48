// Package main provides the bskytldr CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bskytldr/internal/bluesky"
	"bskytldr/internal/display"
	"bskytldr/internal/feed"
	"bskytldr/pkg/browser"
	"bskytldr/pkg/config"
	"bskytldr/pkg/logger"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the bskytldr CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bskytldr",
		Short:   "Daily posts from the accounts you follow on Bluesky",
		Long:    "Bskytldr collects, for every account you follow, the posts authored on a single day and prints them per author in reading order.",
		Version: resolveVersion(version, readBuildInfo()),
	}

	rootCmd.SetVersionTemplate("bskytldr version {{.Version}}\n")

	rootCmd.AddCommand(newPostsCmd())
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// newPostsCmd creates the posts subcommand.
func newPostsCmd() *cobra.Command {
	var (
		actor       string
		date        string
		offset      int
		concurrency int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Show one day of posts from every account an actor follows",
		Long:  "Enumerate the actor's follows, walk each author feed for the target day, and print the posts grouped per author.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}
			if actor == "" {
				actor = cfg.Identifier
			}
			if concurrency <= 0 {
				concurrency = cfg.Concurrency
			}

			log := logger.New(cfg.LogLevel)
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			client, err := buildClient(ctx, cfg, log)
			if err != nil {
				return err
			}

			service := feed.NewService(client, client,
				feed.WithLogger(log),
				feed.WithFeedBatchSize(cfg.FeedBatchSize),
				feed.WithFollowBatchSize(cfg.FollowBatchSize),
				feed.WithConcurrency(concurrency),
			)

			result, err := service.Aggregate(ctx, actor, date, offset)
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			formatter := display.NewTerminalFormatter(offset)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&actor, "actor", "a", "", "Actor whose follows are read (default: the authenticated identifier)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Target day as YYYYMMDD")
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Hour offset from UTC defining the day boundaries (e.g. -8)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Author feeds walked in parallel (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON instead of formatted text")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// buildClient returns a logged-in Bluesky client, reusing a cached session
// when one exists.
func buildClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*bluesky.Client, error) {
	client := bluesky.NewClient(bluesky.WithBaseURL(cfg.ServiceURL))
	store := bluesky.NewSessionStore(cfg.ConfigDir)

	session, err := store.Load(cfg.Identifier)
	switch {
	case err == nil:
		client.SetSession(session)
		log.Debug("reusing cached session", zap.String("identifier", cfg.Identifier))
		return client, nil
	case errors.Is(err, bluesky.ErrSessionNotFound):
	default:
		log.Warn("could not read cached session", zap.Error(err))
	}

	if err := client.Login(ctx, cfg.Identifier, cfg.AppPassword); err != nil {
		return nil, err
	}
	if err := store.Save(cfg.Identifier, client.Session()); err != nil {
		log.Warn("could not cache session", zap.Error(err))
	}
	return client, nil
}

// newOpenCmd creates the open subcommand.
func newOpenCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "open <at-uri>",
		Short: "Open a post AT URI in the browser",
		Long:  "Convert a post AT URI (at://did/app.bsky.feed.post/rkey) to its bsky.app URL and open it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, ok := bluesky.PostURL(args[0])
			if !ok {
				return fmt.Errorf("not a post URI: %q", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			if printOnly {
				return nil
			}
			if err := browser.Open(url); err != nil {
				return fmt.Errorf("could not open browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the URL without opening a browser")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", cfg.ConfigDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Service URL: %s\n", cfg.ServiceURL)
			fmt.Fprintf(cmd.OutOrStdout(), "Feed batch size: %d\n", cfg.FeedBatchSize)
			fmt.Fprintf(cmd.OutOrStdout(), "Follow batch size: %d\n", cfg.FollowBatchSize)
			return nil
		},
	}

	return cmd
}
