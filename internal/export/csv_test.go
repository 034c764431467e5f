package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/cardforge/internal/domain"
)

func buildCollection(t *testing.T, pairs [][2]string) *domain.FlashcardCollection {
	t.Helper()
	fc := domain.NewFlashcardCollection()
	for _, pair := range pairs {
		card, err := domain.NewFlashcard(pair[0], pair[1], domain.CardTypeBasic, "test.txt")
		require.NoError(t, err)
		require.NoError(t, fc.Add(card))
	}
	return fc
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"What is Go?", "A programming language"},
		{"Quote \"this\" please", "Left, right"},
		{"Multi\nline question", "Answer with, commas"},
	}
	fc := buildCollection(t, pairs)

	var buf bytes.Buffer
	rows, err := Write(&buf, fc)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus one row per card")
	assert.Equal(t, Header, records[0])

	for i, pair := range pairs {
		assert.Equal(t, pair[0], records[i+1][0])
		assert.Equal(t, pair[1], records[i+1][1])
		assert.Equal(t, "basic", records[i+1][2])
	}
}

func TestWriteClozeTag(t *testing.T) {
	t.Parallel()

	fc := domain.NewFlashcardCollection()
	card, err := domain.NewFlashcard("Go appeared in {{c1::2009}}.", "2009", domain.CardTypeCloze, "")
	require.NoError(t, err)
	require.NoError(t, fc.Add(card))

	var buf bytes.Buffer
	_, err = Write(&buf, fc)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "cloze", records[1][2])
}

func TestWriteDeterministic(t *testing.T) {
	t.Parallel()

	fc := buildCollection(t, [][2]string{{"Q1?", "A1"}, {"Q2?", "A2"}})

	var first, second bytes.Buffer
	_, err := Write(&first, fc)
	require.NoError(t, err)
	_, err = Write(&second, fc)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes(), "exporting twice must be byte-identical")
}

func TestToFileEmptyCollection(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.csv")
	summary, err := ToFile(path, domain.NewFlashcardCollection())
	require.NoError(t, err, "empty collection is a zero-count summary, not an error")
	assert.Equal(t, 0, summary.RowCount)
	assert.Equal(t, path, summary.Destination)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "front,back,tag\n", string(data))
}

func TestToFileUnwritableDestination(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	_, err := ToFile(path, domain.NewFlashcardCollection())

	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, path, exportErr.Destination)
}
