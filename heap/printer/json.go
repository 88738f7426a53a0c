package printer

import (
	"encoding/json"
	"fmt"

	"github.com/andyturk/ummkit/internal/format"
)

// jsonArena is the JSON shape of a dumped arena.
type jsonArena struct {
	Cells     int         `json:"cells"`
	FreeBytes int         `json:"free_bytes"`
	UsedBytes int         `json:"used_bytes"`
	Blocks    []jsonBlock `json:"blocks"`
}

// jsonBlock is one physical block in the dump.
type jsonBlock struct {
	Cell  int  `json:"cell"`
	Bytes int  `json:"bytes"`
	Free  bool `json:"free"`
}

// printJSON renders the arena as an indented JSON document.
func (p *Printer) printJSON(data []byte) error {
	cells := format.CellCount(len(data))
	if cells < format.MinCells {
		return fmt.Errorf("printer: arena too small (%d cells)", cells)
	}

	a := jsonArena{Cells: cells}
	for c := format.Next(data, 0); c != 0 && format.Next(data, c) != 0; c = format.Next(data, c) {
		free := format.IsFree(data, c)
		bytes := format.SizeInCells(data, c) * format.CellSize
		if free {
			a.FreeBytes += bytes
		} else {
			a.UsedBytes += bytes
		}
		if free && !p.opts.ShowFree {
			continue
		}
		a.Blocks = append(a.Blocks, jsonBlock{Cell: c, Bytes: bytes, Free: free})
	}

	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", out)
	return err
}
