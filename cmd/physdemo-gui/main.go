// Command physdemo-gui shows the demonstrations in a desktop window with
// sliders. It needs cgo and the OpenGL headers, so it is built apart from
// the physdemo command.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/san-kum/physdemo/internal/config"
	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/gui"
)

var (
	setFlags   []string
	configFile string
	preset     string
	plotWidth  int
	plotHeight int
	snapshots  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:          "physdemo-gui [demo]",
		Short:        "physics demonstrations in a window",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().StringArrayVar(&setFlags, "set", nil, "slider value as name=value (repeatable)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "parameter file (yaml)")
	rootCmd.Flags().StringVar(&preset, "preset", "", "named preset")
	rootCmd.Flags().IntVar(&plotWidth, "plot-width", 0, "plot width in pixels")
	rootCmd.Flags().IntVar(&plotHeight, "plot-height", 0, "plot height in pixels")
	rootCmd.Flags().StringVar(&snapshots, "snapshots", ".", "directory for saved PNGs")

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	reg := demo.NewRegistry()
	name, initial := "", demo.Values(nil)
	if len(args) == 1 {
		var err error
		name = args[0]
		if initial, err = resolve(reg, name); err != nil {
			return err
		}
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	a := app.NewWithID("io.github.san-kum.physdemo")
	b, err := gui.NewBrowser(cmd.Context(), a, reg, name, initial, gui.Options{
		Width:       plotWidth,
		Height:      plotHeight,
		FPS:         env.FPS,
		SnapshotDir: snapshots,
		Logger:      log.New(os.Stderr, "physdemo-gui: ", log.LstdFlags),
	})
	if err != nil {
		return err
	}
	w := b.Window()
	w.Resize(fyne.NewSize(1100, 700))
	go func() {
		<-cmd.Context().Done()
		a.Quit()
	}()
	w.ShowAndRun()
	return nil
}

func resolve(reg *demo.Registry, name string) (demo.Values, error) {
	d, err := reg.Get(name)
	if err != nil {
		return nil, err
	}
	var file *config.File
	if configFile != "" {
		if file, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	set, err := demo.ParseAssignments(setFlags)
	if err != nil {
		return nil, err
	}
	return config.Resolve(d, preset, file, set)
}
