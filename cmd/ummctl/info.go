package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andyturk/ummkit/heap/mapped"
	"github.com/andyturk/ummkit/heap/verify"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Show arena statistics",
		Long: `The info command validates an arena image and reports its cell count,
free and used byte totals, block counts, and the largest request that would
currently succeed.

Example:
  ummctl info scratch.umm
  ummctl info scratch.umm --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

func runInfo(path string) error {
	a, err := mapped.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	h := a.Heap()
	if err := verify.AllInvariants(h.Bytes()); err != nil {
		return fmt.Errorf("invalid arena: %w", err)
	}

	blocks := 0
	it := h.Blocks()
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		blocks++
	}

	if jsonOut {
		out, err := json.MarshalIndent(map[string]any{
			"path":         path,
			"cells":        h.Cells(),
			"total_bytes":  h.TotalBytes(),
			"free_bytes":   h.FreeBytes(),
			"used_bytes":   h.UsedBytes(),
			"largest_free": h.LargestFree(),
			"used_blocks":  blocks,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s\n", out)
		return nil
	}

	printInfo("Arena:        %s\n", path)
	printInfo("Cells:        %d (%s)\n", h.Cells(), humanize.IBytes(uint64(h.Cells()*8)))
	printInfo("Total:        %s\n", humanize.IBytes(uint64(h.TotalBytes())))
	printInfo("Free:         %s\n", humanize.IBytes(uint64(h.FreeBytes())))
	printInfo("Used:         %s in %d blocks\n", humanize.IBytes(uint64(h.UsedBytes())), blocks)
	printInfo("Largest free: %s\n", humanize.IBytes(uint64(h.LargestFree())))
	return nil
}
