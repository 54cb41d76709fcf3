package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"keyout/internal/converter"
	"keyout/internal/tui"
	"keyout/pkg/imgutil"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "List the BMP files convert would pick up, without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		logger, closeLog, err := openLogger(nil)
		if err != nil {
			return err
		}
		defer closeLog()

		names, err := converter.New(converter.Options{}, logger).Scan(dir)
		if err != nil {
			return statusError(err)
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, tui.Warn("No BMP files found in the selected directory"))
			return nil
		}

		fmt.Fprintln(out, tui.Title(fmt.Sprintf("Found %d BMP files", len(names))))
		for _, name := range names {
			path := filepath.Join(dir, name)
			fmt.Fprintf(out, "  %s %s %s\n",
				tui.Dim("-"),
				tui.Accent(name),
				tui.Dim(describeCandidate(path)),
			)
		}
		return nil
	},
}

// describeCandidate is the size and sniffed header kind, or why neither is known.
func describeCandidate(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "(unreadable)"
	}
	if info.Size() == 0 {
		return "(empty)"
	}
	kind, err := imgutil.SniffFile(path)
	if err != nil {
		return fmt.Sprintf("(%d bytes, header unreadable)", info.Size())
	}
	if kind != imgutil.KindBMP {
		return fmt.Sprintf("(%d bytes, %s content)", info.Size(), kind)
	}
	if info.Size() < converter.MinBMPSize {
		return fmt.Sprintf("(%d bytes, smaller than a BMP header)", info.Size())
	}
	return fmt.Sprintf("(%d bytes)", info.Size())
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
