// cmd/roadmap/main.go
//
// Entry point for the roadmap builder.
//
//	roadmap            open the editor for the current directory
//	roadmap export     write north-star-roadmap.svg from the configured seed
//	roadmap version    print version information

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LearnData-lab/RoadmapBuilder/internal/config"
	"github.com/LearnData-lab/RoadmapBuilder/internal/export"
	"github.com/LearnData-lab/RoadmapBuilder/internal/logbook"
	"github.com/LearnData-lab/RoadmapBuilder/internal/tui"
)

const (
	Version = "0.1.0"
	appName = "roadmap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		projectDir string
		timeline   bool
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Build a north star roadmap in the terminal",
		Long: `Roadmap edits a list of initiatives grouped by quarter and status,
shows them as a timeline, and exports the timeline as a standalone SVG.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(projectDir, timeline)
		},
	}
	cmd.PersistentFlags().StringVarP(&projectDir, "project", "p", ".", "project directory holding .roadmap/")
	cmd.Flags().BoolVar(&timeline, "timeline", false, "start in the timeline view")

	cmd.AddCommand(exportCmd(&projectDir))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func exportCmd(projectDir *string) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the seed roadmap as " + export.DefaultFilename,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, book, err := loadProject(*projectDir)
			if err != nil {
				return err
			}
			dir := cfg.ExportDir()
			if outDir != "" {
				if dir, err = filepath.Abs(outDir); err != nil {
					return fmt.Errorf("resolve output dir: %w", err)
				}
			}
			path, err := export.NewSaver(dir).Save(export.Render(cfg.SeedState()))
			if err != nil {
				book.Error("Export failed: %v", err)
				return err
			}
			book.Info("Exported seed roadmap to %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (defaults to export.dir from config)")
	return cmd
}

func runEditor(projectDir string, timeline bool) error {
	cfg, book, err := loadProject(projectDir)
	if err != nil {
		return err
	}
	opts := []tui.AppOption{
		tui.WithLogbook(book),
		tui.WithSaver(export.NewSaver(cfg.ExportDir())),
	}
	if timeline {
		opts = append(opts, tui.WithMode(tui.ModeTimeline))
	}
	p := tea.NewProgram(
		tui.NewApp(cfg.SeedState(), opts...),
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func loadProject(projectDir string) (*config.Config, *logbook.Logbook, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve project dir: %w", err)
	}
	if err := config.InitRoadmapDir(abs); err != nil {
		return nil, nil, fmt.Errorf("init .roadmap: %w", err)
	}
	cfg, err := config.NewConfig(abs)
	if err != nil {
		return nil, nil, err
	}
	book, err := logbook.New(cfg.LogPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open logbook: %w", err)
	}
	return cfg, book, nil
}
