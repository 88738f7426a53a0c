package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/andyturk/ummkit/heap/mapped"
	"github.com/andyturk/ummkit/heap/printer"
)

var (
	dumpNoFree  bool
	dumpNoLinks bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpNoFree, "no-free", false, "Hide free blocks")
	cmd.Flags().BoolVar(&dumpNoLinks, "no-links", false, "Hide raw link words")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <image>",
		Short: "Human-readable dump of an arena image",
		Long: `The dump command prints one row per physical block: its first cell,
its link words, and its size. Free blocks are marked with '*' and show
their free-ring links.

Example:
  ummctl dump scratch.umm
  ummctl dump scratch.umm --no-free
  ummctl dump scratch.umm --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func runDump(path string) error {
	a, err := mapped.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := printer.DefaultOptions()
	opts.ShowFree = !dumpNoFree
	opts.ShowLinks = !dumpNoLinks
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	return printer.New(os.Stdout, opts).Print(a.Heap().Bytes())
}
