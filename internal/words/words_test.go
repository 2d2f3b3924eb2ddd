package words_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/words"
)

const table = `# comment
word 10
wore 3
core 5
cord 2
Card 7
ca-t 9
words 40
`

func TestLoad_FrequencyTable(t *testing.T) {
	s, err := words.Load(words.BytesSource("t", []byte(table)), 4, words.DefaultMinFrequency)
	require.NoError(t, err)

	// cord appears only twice and ca-t is not alphabetic
	assert.Equal(t, []string{"CARD", "CORE", "WORD", "WORE"}, s.Words())
	assert.Equal(t, 4, s.Length())
	assert.True(t, s.Contains("WORD"))
	assert.False(t, s.Contains("CORD"))
	assert.False(t, s.Contains("word"), "Contains expects normalized input")
}

func TestLoad_FreeText(t *testing.T) {
	text := "The cold cord, the cold card.\nCold! cord cord card; card\n"
	s, err := words.Load(words.BytesSource("t", []byte(text)), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"CARD", "COLD", "CORD"}, s.Words())
}

func TestLoad_Errors(t *testing.T) {
	_, err := words.Load(words.BytesSource("t", []byte(table)), 0, 2)
	require.ErrorIs(t, err, words.ErrBadLength)

	_, err = words.Load(words.BytesSource("t", []byte(table)), 9, 2)
	require.ErrorIs(t, err, words.ErrEmptyCorpus)

	_, err = words.Load(words.FileSource("/nonexistent/corpus.txt"), 4, 2)
	require.Error(t, err)
}

func TestLoadOrFallback(t *testing.T) {
	sets := words.LoadOrFallback(words.FileSource("/nonexistent/corpus.txt"), []int{4, 5}, 2)
	require.Len(t, sets, 2)
	assert.Equal(t, words.Fallback(4).Words(), sets[4].Words())
	assert.True(t, sets[5].Contains("STONE"))

	// a readable corpus missing one length only falls back for that length
	sets = words.LoadOrFallback(words.BytesSource("t", []byte(table)), []int{4, 6}, 2)
	assert.Equal(t, 4, sets[4].Len())
	assert.True(t, sets[6].Contains("LETTER"))
}

func TestEmbeddedCorpus(t *testing.T) {
	c, err := words.ReadCorpus(words.EmbeddedSource())
	require.NoError(t, err)
	for _, n := range []int{4, 5, 6} {
		assert.Greater(t, c.Select(n, words.DefaultMinFrequency).Len(), 50, "length %d", n)
	}
	assert.False(t, c.Count("zyme") > words.DefaultMinFrequency)
}

func TestNewSet(t *testing.T) {
	s := words.NewSet(4, []string{" word", "WORD", "wo rd", "words", "c0re", "core"})
	assert.Equal(t, []string{"CORE", "WORD"}, s.Words())
}

func TestFallback(t *testing.T) {
	for _, n := range []int{4, 5, 6} {
		s := words.Fallback(n)
		assert.Greater(t, s.Len(), 30)
		for _, w := range s.Words() {
			assert.Len(t, w, n)
		}
	}
	assert.Zero(t, words.Fallback(9).Len())
}
