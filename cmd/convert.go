package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"keyout/internal/config"
	"keyout/internal/converter"
	"keyout/internal/report"
	"keyout/internal/tui"
)

var (
	convertColor       string
	convertOutput      string
	convertCompression string
	convertReport      string
	convertOpen        bool
	convertPlain       bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <dir>",
	Short: "Convert every BMP in a folder to PNG with the key color made transparent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		cfg, err := loadConfig(config.Overrides{
			Color:        convertColor,
			OutputFolder: convertOutput,
			Compression:  convertCompression,
		})
		if err != nil {
			return err
		}
		opts, err := cfg.EngineOptions()
		if err != nil {
			return err
		}

		var fallback io.Writer
		if convertPlain {
			fallback = cmd.ErrOrStderr()
		}
		logger, closeLog, err := openLogger(fallback)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine := converter.New(opts, logger)
		var result converter.Report
		if convertPlain {
			result, err = runPlain(ctx, engine, dir, cmd.OutOrStdout())
		} else {
			result, err = runInteractive(ctx, engine, dir)
		}
		if err != nil {
			return statusError(err)
		}

		out := cmd.OutOrStdout()
		printReport(out, result)

		if convertReport != "" {
			if err := report.Export(convertReport, result); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(out, "Report written to: %s\n", convertReport)
		}
		if convertOpen {
			if err := openFolder(result.OutputDir); err != nil {
				logger.Warn("convert.open_folder.failed", "path", result.OutputDir, "err", err)
				fmt.Fprintln(cmd.ErrOrStderr(), tui.Warn("Could not open the output folder"))
			}
		}
		return nil
	},
}

// runInteractive drives the progress UI from the engine's event channel.
func runInteractive(ctx context.Context, engine *converter.Engine, dir string) (converter.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan converter.Event, 64)
	_, done, err := engine.Start(ctx, dir, converter.ChanSink(events))
	if err != nil {
		return converter.Report{}, err
	}

	program := tea.NewProgram(tui.NewModel(dir, events, cancel))
	uiDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		// keep the worker unblocked if the UI exits early
		for range events {
		}
		close(uiDone)
	}()

	result := <-done
	close(events)
	<-uiDone
	return result, nil
}

func runPlain(ctx context.Context, engine *converter.Engine, dir string, out io.Writer) (converter.Report, error) {
	sink := converter.SinkFuncs{
		Progress: func(processed, total int) {
			fmt.Fprintf(out, "[%d/%d]\n", processed, total)
		},
		FileFailed: func(o converter.FileOutcome) {
			fmt.Fprintf(out, "%s: %s: %s\n", o.Name, o.Status, o.Detail)
		},
	}
	return engine.Convert(ctx, dir, sink)
}

func printReport(out io.Writer, r converter.Report) {
	fmt.Fprintln(out, tui.RenderSummary(tui.ReportRows(r)))
	if r.Cancelled {
		fmt.Fprintln(out, tui.Warn("Conversion stopped before all files were processed"))
	}
	switch {
	case len(r.Failed) > 0:
		fmt.Fprintln(out, tui.Warn("Conversion completed with errors"))
		fmt.Fprintln(out, tui.RenderFailures(r.Failed))
	case !r.Cancelled:
		fmt.Fprintln(out, tui.Success("Conversion completed successfully"))
	}
	fmt.Fprintf(out, "PNG files written to: %s\n", r.OutputDir)
}

func init() {
	convertCmd.Flags().StringVarP(&convertColor, "color", "c", "", "key color made transparent, as #RRGGBB")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output folder name inside the source folder")
	convertCmd.Flags().StringVar(&convertCompression, "compression", "", "PNG compression: default, none, speed or best")
	convertCmd.Flags().StringVar(&convertReport, "report", "", "write a run report (.json or .xlsx)")
	convertCmd.Flags().BoolVar(&convertOpen, "open", false, "open the output folder when done")
	convertCmd.Flags().BoolVar(&convertPlain, "plain", false, "line output instead of the progress UI")

	rootCmd.AddCommand(convertCmd)
}
