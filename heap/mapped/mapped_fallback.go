//go:build !unix

package mapped

import (
	"io"
	"os"
)

// mapFile reads the file into a private buffer; Flush writes it back.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

func unmapFile([]byte) error { return nil }

// flushMap rewrites the whole image and syncs.
func flushMap(f *os.File, data []byte) error {
	if _, err := f.WriteAt(data, 0); err != nil {
		return err
	}
	return f.Sync()
}
