// Package cli wires the cobra command tree: plan (load, schedule,
// render) and version.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oriskedar/examplan/internal/config"
	"github.com/oriskedar/examplan/internal/loader"
	"github.com/oriskedar/examplan/internal/placer"
	"github.com/oriskedar/examplan/internal/planmodel"
	"github.com/oriskedar/examplan/internal/render"
	"github.com/oriskedar/examplan/internal/verifier"
)

// Version is set at build time.
var Version = "dev"

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	debug   bool
	input   string
	output  string
	verbose bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "examplan",
		Short: "Build an ADHD-aware exam study schedule",
		Long: `examplan derives a day-by-day study schedule from exam attributes,
respecting tuition blocks, supper breaks, and day-before reservations
for each exam's priority study sessions.`,
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.versionCmd())

	return a
}

func (a *App) planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Load a timetable and print the resulting study schedule",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runPlan()
		},
	}
	cmd.Flags().StringVarP(&a.input, "input", "i", "custom_data.json", "path to the timetable JSON file")
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "write rendered output to this file instead of stdout")
	cmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "include verifier warnings even when none are found")
	return cmd
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("examplan %s\n", Version)
		},
	}
}

func (a *App) runPlan() error {
	input, err := loader.LoadFile(a.input)
	if err != nil {
		return fmt.Errorf("loading timetable: %w", err)
	}

	items := placer.Run(input, time.Now())
	warnings := verifier.Verify(input, items)
	plan := &planmodel.Plan{Items: items, Warnings: warnings}

	if (a.verbose || a.config.Output.Verbose) && len(warnings) == 0 {
		fmt.Fprintln(os.Stderr, "no verifier warnings")
	}

	w := os.Stdout
	if a.output != "" {
		f, err := os.Create(a.output)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()
		render.Plan(f, input, plan)
		return nil
	}

	if !a.config.Output.Color {
		render.DisableColor()
	}
	render.Plan(w, input, plan)
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
