package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andyturk/ummkit/heap/mapped"
)

var createSize string

func init() {
	cmd := newCreateCmd()
	cmd.Flags().StringVar(&createSize, "size", "8KiB", "Arena size (accepts 8192, 8KiB, 64KB, ...)")
	rootCmd.AddCommand(cmd)
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <image>",
		Short: "Create and stamp a fresh arena image",
		Long: `The init command creates an arena image file of the requested size and
stamps the empty-arena structure into it: the list sentinel, one free block
spanning every usable cell, and the terminal.

Example:
  ummctl init scratch.umm
  ummctl init scratch.umm --size 64KiB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0])
		},
	}
}

func runCreate(path string) error {
	bytes, err := humanize.ParseBytes(createSize)
	if err != nil {
		return fmt.Errorf("bad --size: %w", err)
	}

	printVerbose("Creating arena: %s (%s)\n", path, humanize.IBytes(bytes))

	a, err := mapped.Create(path, int(bytes))
	if err != nil {
		return err
	}
	defer a.Close()

	h := a.Heap()
	printInfo("%s: %d cells, %s allocatable\n",
		path, h.Cells(), humanize.IBytes(uint64(h.Cap())))
	return a.Flush()
}
