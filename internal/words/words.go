// internal/words/words.go
//
// Corpus loading for the ladder engine.
//
// Responsibilities:
//   - Read a word corpus from a file, the embedded default table, or any reader.
//   - Count token frequencies and admit only common words of a given length.
//   - Fall back to small built-in lists when the corpus cannot be read, so the
//     engine still starts (degraded mode).
//
// Corpus format (one entry per line, '#' starts a comment):
//   - "word count" lines are read as a frequency table.
//   - any other line is free text; each alphabetic token counts once.
//
// Words are normalized to upper case. Only A–Z tokens survive.

package words

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/assets"
)

// DefaultMinFrequency admits words that appear more than twice.
const DefaultMinFrequency = 2

var (
	ErrEmptyCorpus = errors.New("words: corpus produced no words")
	ErrBadLength   = errors.New("words: word length must be positive")
)

// Source yields a fresh reader over a corpus on every Open.
type Source interface {
	Open() (io.ReadCloser, error)
	Name() string
}

type fileSource string

// FileSource reads the corpus at path.
func FileSource(path string) Source { return fileSource(path) }

func (f fileSource) Open() (io.ReadCloser, error) { return os.Open(string(f)) }
func (f fileSource) Name() string                 { return string(f) }

type embeddedSource struct{}

// EmbeddedSource reads the frequency table compiled into the binary.
func EmbeddedSource() Source { return embeddedSource{} }

func (embeddedSource) Open() (io.ReadCloser, error) { return assets.Corpus() }
func (embeddedSource) Name() string                 { return "embedded" }

type bytesSource struct {
	name string
	b    []byte
}

// BytesSource serves an in-memory corpus; mostly useful in tests.
func BytesSource(name string, b []byte) Source { return bytesSource{name: name, b: b} }

func (s bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.b)), nil
}
func (s bytesSource) Name() string { return s.name }

// Corpus holds the token frequencies read from a Source.
type Corpus struct {
	name   string
	counts map[string]int
}

// ReadCorpus reads every line of src and tallies normalized tokens.
func ReadCorpus(src Source) (*Corpus, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", src.Name(), err)
	}
	defer rc.Close()

	c := &Corpus{name: src.Name(), counts: make(map[string]int)}
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		// frequency table row
		if len(fields) == 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				if w := Normalize(fields[0]); IsAlpha(w) {
					c.counts[w] += n
				}
				continue
			}
		}
		for _, tok := range fields {
			tok = strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) })
			if w := Normalize(tok); IsAlpha(w) {
				c.counts[w]++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", src.Name(), err)
	}
	return c, nil
}

// Name reports the source the corpus was read from.
func (c *Corpus) Name() string { return c.name }

// Count returns how often w appeared.
func (c *Corpus) Count(w string) int { return c.counts[Normalize(w)] }

// Select returns the words of the given length seen more than minFreq times.
func (c *Corpus) Select(length, minFreq int) *Set {
	var out []string
	for w, n := range c.counts {
		if len(w) == length && n > minFreq {
			out = append(out, w)
		}
	}
	return NewSet(length, out)
}

// Load reads src and returns the common words of one length.
// Fails with ErrEmptyCorpus when nothing qualifies.
func Load(src Source, length, minFreq int) (*Set, error) {
	if length <= 0 {
		return nil, ErrBadLength
	}
	c, err := ReadCorpus(src)
	if err != nil {
		return nil, err
	}
	s := c.Select(length, minFreq)
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: length %d in %s", ErrEmptyCorpus, length, src.Name())
	}
	return s, nil
}

// LoadOrFallback builds one Set per length from src. When the corpus cannot
// be read, or yields nothing for a length, the built-in list for that length
// is used instead. It never fails.
func LoadOrFallback(src Source, lengths []int, minFreq int) map[int]*Set {
	out := make(map[int]*Set, len(lengths))
	c, err := ReadCorpus(src)
	if err != nil {
		log.Warn().Err(err).Str("source", src.Name()).Msg("corpus unavailable, using fallback word lists")
	}
	for _, n := range lengths {
		if c != nil {
			if s := c.Select(n, minFreq); s.Len() > 0 {
				out[n] = s
				continue
			}
			log.Warn().Int("length", n).Str("source", c.Name()).Msg("corpus has no words of this length, using fallback")
		}
		out[n] = Fallback(n)
	}
	return out
}

// Normalize trims and upper-cases a word.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsAlpha reports whether s is a non-empty run of A–Z.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
