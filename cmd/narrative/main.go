package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vampirenirmal/narrative/internal/agent"
	"github.com/vampirenirmal/narrative/internal/beat"
	"github.com/vampirenirmal/narrative/internal/config"
	"github.com/vampirenirmal/narrative/internal/enrich"
	"github.com/vampirenirmal/narrative/internal/feedback"
	"github.com/vampirenirmal/narrative/internal/generate"
	"github.com/vampirenirmal/narrative/internal/graph"
	"github.com/vampirenirmal/narrative/internal/storage"
)

var version = "dev"

var (
	verbose     bool
	storyPath   string
	sessionID   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "narrative",
	Short:   "Staged narrative generation pipeline",
	Long:    "Narrative drafts story beats, scores them across emotional, character and thematic dimensions, and enriches weak beats until a quality target or iteration cap is reached.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	runCmd.Flags().StringVarP(&storyPath, "story", "s", "", "Path to story spec yaml (required)")
	runCmd.Flags().StringVar(&sessionID, "session", "", "Resume an existing session id")
	runCmd.MarkFlagRequired("story")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sessionsCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := config.ConfigPath()
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o600); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Set NARRATIVE_API_KEY or edit the file to configure the generation endpoint.")
		return nil
	},
}

// storySpec is the yaml input to a run: the cast, the themes, and the
// planned scene moments.
type storySpec struct {
	Themes     []string `yaml:"themes"`
	Characters []struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		ArcType string `yaml:"arc_type"`
	} `yaml:"characters"`
	Scenes []generate.SceneOutline `yaml:"scenes"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline pass over a story spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		specData, err := os.ReadFile(storyPath)
		if err != nil {
			return fmt.Errorf("reading story spec: %w", err)
		}
		var spec storySpec
		if err := yaml.Unmarshal(specData, &spec); err != nil {
			return fmt.Errorf("parsing story spec: %w", err)
		}

		logger := slog.Default()

		client := agent.NewClient(cfg.AI.APIKey,
			agent.WithAPIConfig(cfg.AI.BaseURL, cfg.AI.Model),
			agent.WithTimeout(time.Duration(cfg.AI.Timeout)*time.Second),
			agent.WithRetry(cfg.Limits.MaxRetries),
			agent.WithRateLimit(cfg.Limits.RateLimit.RequestsPerMinute, cfg.Limits.RateLimit.BurstSize),
			agent.WithLogger(logger),
		)

		enricher := enrich.New(logger,
			enrich.WithGenerator(client),
			enrich.WithTargetQuality(cfg.Limits.QualityTarget),
			enrich.WithMaxIterations(cfg.Limits.EnrichMaxIterations),
		)
		analyzer := feedback.NewAnalyzer(logger)
		loop := feedback.NewLoop(analyzer, enricher, feedback.LoopConfig{
			MaxIterations: cfg.Limits.LoopMaxIterations,
			QualityTarget: cfg.Limits.QualityTarget,
		}, logger)

		sessions := storage.NewSessionStore(storage.NewFileSystem(cfg.Paths.DataDir), logger)

		pipeline := &graph.Pipeline{
			Sessions: sessions,
			Drafter:  generate.NewDrafter(client, logger),
			Analyzer: analyzer,
			Loop:     loop,
			Logger:   logger,
		}

		state := graph.NewState()
		if sessionID != "" {
			state.SessionID = sessionID
		}
		state.Outline = spec.Scenes
		state.Themes = spec.Themes

		tracker := beat.NewArcTracker(logger)
		for _, c := range spec.Characters {
			tracker.RegisterCharacter(c.ID, c.Name, c.ArcType)
		}
		state.Arcs = tracker.Arcs()

		final, execErr := pipeline.Graph().Execute(cmd.Context(), state)

		// Save whatever was reached, even on a failed pass.
		if saveErr := sessions.SaveState(context.Background(), final); saveErr != nil {
			logger.Error("Failed to save session", "error", saveErr)
		}

		fmt.Printf("Session: %s\n", final.SessionID)
		for _, r := range final.NodeResults {
			fmt.Printf("  %-10s %-9s %5dms\n", r.NodeID, r.Status, r.DurationMs)
		}
		if final.LatestAnalysis != nil {
			fmt.Printf("Overall score: %.2f (%d gaps)\n",
				final.LatestAnalysis.OverallScore, len(final.LatestAnalysis.Gaps))
			for role, gaps := range feedback.RouteGaps(final.LatestAnalysis.Gaps) {
				fmt.Printf("  %-12s %d gap(s)\n", role, len(gaps))
			}
		}
		fmt.Printf("Committed beats: %d\n", len(final.CompletedBeats))

		return execErr
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		sessions := storage.NewSessionStore(storage.NewFileSystem(cfg.Paths.DataDir), slog.Default())
		ids, err := sessions.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No saved sessions.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}
