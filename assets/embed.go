package assets

import (
	"bytes"
	"embed"
	"io"
)

//go:embed corpus.txt
var FS embed.FS

// Corpus opens the embedded word frequency table.
func Corpus() (io.ReadCloser, error) {
	b, err := FS.ReadFile("corpus.txt")
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
