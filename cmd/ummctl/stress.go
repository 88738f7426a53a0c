package main

import (
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andyturk/ummkit/heap"
	"github.com/andyturk/ummkit/heap/verify"
)

var (
	stressOps        int
	stressSlots      int
	stressSeed       int64
	stressSize       string
	stressMaxBlock   int
	stressCheckEvery int
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 1_000_000, "Number of random operations")
	cmd.Flags().IntVar(&stressSlots, "slots", 50, "Concurrent allocation slots")
	cmd.Flags().Int64Var(&stressSeed, "seed", 42, "Random seed")
	cmd.Flags().StringVar(&stressSize, "size", "8KiB", "Arena size")
	cmd.Flags().IntVar(&stressMaxBlock, "max-block", 256, "Upper bound (exclusive) on block sizes")
	cmd.Flags().
		IntVar(&stressCheckEvery, "check-every", 1000, "Validate structure every N ops (1 = every op)")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Hammer an in-memory arena with random operations",
		Long: `The stress command runs random alloc/realloc/free operations against an
in-memory arena, fingerprinting every live block and verifying both the
fingerprints and the arena structure as it goes. A nonzero exit means the
allocator corrupted something.

Example:
  ummctl stress
  ummctl stress --ops 10000000 --size 256KiB --check-every 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// stressSlot tracks one live block and the fingerprint of its contents.
type stressSlot struct {
	ref  heap.Ref
	size int
	sum  uint64
}

func runStress() error {
	arenaBytes, err := humanize.ParseBytes(stressSize)
	if err != nil {
		return fmt.Errorf("bad --size: %w", err)
	}

	h, err := heap.New(make([]byte, arenaBytes))
	if err != nil {
		return err
	}
	h.Init()

	rng := rand.New(rand.NewSource(stressSeed))
	slots := make([]stressSlot, stressSlots)
	var allocs, frees, reallocs, failures uint64

	fill := func(s *stressSlot) {
		p := h.Payload(s.ref)[:s.size]
		rng.Read(p)
		s.sum = xxhash.Sum64(p)
	}
	check := func(i int, s *stressSlot, step int) error {
		if s.ref == 0 || s.size == 0 {
			return nil
		}
		if got := xxhash.Sum64(h.Payload(s.ref)[:s.size]); got != s.sum {
			return fmt.Errorf("step %d: slot %d (ref %d, %d bytes) changed under us", step, i, s.ref, s.size)
		}
		return nil
	}

	for step := range stressOps {
		i := rng.Intn(len(slots))
		s := &slots[i]
		size := rng.Intn(stressMaxBlock)

		if err := check(i, s, step); err != nil {
			return err
		}

		switch rng.Intn(3) {
		case 0:
			if s.ref != 0 {
				h.Free(s.ref)
				frees++
			}
			*s = stressSlot{}
			if ref := h.Alloc(size); ref != 0 {
				allocs++
				s.ref, s.size = ref, size
				fill(s)
			} else if size > 0 {
				failures++
			}

		case 1:
			ref := h.Realloc(s.ref, size)
			reallocs++
			switch {
			case size == 0:
				*s = stressSlot{}
			case ref == 0:
				failures++
			default:
				s.ref, s.size = ref, size
				fill(s)
			}

		case 2:
			if s.ref != 0 {
				h.Free(s.ref)
				frees++
			}
			*s = stressSlot{}
		}

		if stressCheckEvery > 0 && step%stressCheckEvery == 0 {
			if err := verify.AllInvariants(h.Bytes()); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
		}
	}

	if err := verify.AllInvariants(h.Bytes()); err != nil {
		return fmt.Errorf("final check: %w", err)
	}
	for i := range slots {
		if err := check(i, &slots[i], stressOps); err != nil {
			return err
		}
	}

	printInfo("ok: %s ops (%s allocs, %s frees, %s reallocs, %s failures)\n",
		humanize.Comma(int64(stressOps)), humanize.Comma(int64(allocs)),
		humanize.Comma(int64(frees)), humanize.Comma(int64(reallocs)),
		humanize.Comma(int64(failures)))
	printInfo("arena: %s free / %s total\n",
		humanize.IBytes(uint64(h.FreeBytes())), humanize.IBytes(uint64(h.TotalBytes())))
	return nil
}
