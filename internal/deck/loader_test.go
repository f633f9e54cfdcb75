package deck

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// memSource serves decks from memory.
type memSource map[string]string

func (m memSource) Open(_ context.Context, id string) (io.ReadCloser, error) {
	content, ok := m[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// failingReader errors after the open succeeded.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

type failingSource struct{}

func (failingSource) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(failingReader{}), nil
}

var testSources = memSource{
	"small.txt":    "4x Howler [Crypt]\nnot a valid deck line\n2 Abbot [Action]\n",
	"other.txt":    "Narrow Minds [Event]\n",
	"comments.txt": "# nothing\n// to\n; see\n",
	"empty.txt":    "",
	"export.json":  testExport,
}

func TestLoader_Text(t *testing.T) {
	d := New()
	result := NewLoader(WithSource(testSources)).Load(context.Background(), d, "small.txt")

	assert.False(t, result.Fallback)
	assert.NoError(t, result.Reason)
	require.NotNil(t, result.Report)
	assert.Len(t, result.Report.Skipped, 1)
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, 4, d.CryptSize())
	assert.Equal(t, 2, d.LibrarySize())
}

func TestLoader_ReplacesPreviousContent(t *testing.T) {
	d := New()
	loader := NewLoader(WithSource(testSources))

	loader.Load(context.Background(), d, "small.txt")
	loader.Load(context.Background(), d, "other.txt")

	require.Equal(t, 1, d.Len())
	assert.Equal(t, "Narrow Minds", d.Cards()[0].Name())
}

func TestLoader_Fallbacks(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		source     Source
		wantReason error
	}{
		{"no identifier", "", testSources, nil},
		{"missing source", "nope.txt", testSources, ErrSourceUnavailable},
		{"read failure", "broken.txt", failingSource{}, ErrSourceUnavailable},
		{"comments only", "comments.txt", testSources, ErrEmptyResult},
		{"empty file", "empty.txt", testSources, ErrEmptyResult},
		{"export without resolver", "export.json", testSources, ErrEmptyResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.Replace(SampleCards()[:3], Info{Name: "stale"})

			result := NewLoader(WithSource(tt.source)).Load(context.Background(), d, tt.id)

			assert.True(t, result.Fallback)
			if tt.wantReason == nil {
				assert.NoError(t, result.Reason)
			} else {
				assert.ErrorIs(t, result.Reason, tt.wantReason)
			}
			assert.Equal(t, 101, d.Len())
			assert.Equal(t, 12, d.CryptSize())
			assert.Equal(t, SampleInfo, d.Info())
		})
	}
}

func TestLoader_LogsFallback(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	loader := NewLoader(WithSource(testSources), WithLogger(zap.New(core)))

	loader.Load(context.Background(), New(), "nope.txt")

	entries := logs.FilterMessage("Failed to load deck, loading sample deck instead").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "nope.txt", entries[0].ContextMap()["source"])
}

func TestLoader_Export(t *testing.T) {
	d := New()
	loader := NewLoader(WithSource(testSources), WithResolver(testResolver))

	result := loader.Load(context.Background(), d, "export.json")

	assert.False(t, result.Fallback)
	assert.Equal(t, FormatExport, result.Report.Format)
	assert.Len(t, result.Report.Unresolved, 1)
	assert.Equal(t, 9, d.Len())
	assert.Equal(t, "Animalism toolbox", d.Info().Name)
}

func TestLoader_Parse_DoesNotTouchDeck(t *testing.T) {
	loader := NewLoader(WithSource(testSources))

	report, cards, info, err := loader.Parse(context.Background(), "small.txt")
	require.NoError(t, err)
	assert.Len(t, cards, 6)
	assert.Equal(t, Info{}, info)
	assert.Equal(t, FormatText, report.Format)

	_, _, _, err = loader.Parse(context.Background(), "comments.txt")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestLoader_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	require.NoError(t, os.WriteFile(path, []byte("3 Carrion Crows [Combat]\n"), 0o644))

	d := New()
	result := NewLoader().Load(context.Background(), d, path)

	assert.False(t, result.Fallback)
	assert.Equal(t, 3, d.LibrarySize())
}

func TestLoader_RejectsOversizedSource(t *testing.T) {
	content := "#######\nHowler [Crypt] x12\n"
	limit := int64(len(content) - 2)

	d := New()
	result := NewLoader(
		WithSource(memSource{"big.txt": content}),
		WithMaxSourceSize(limit),
	).Load(context.Background(), d, "big.txt")

	assert.True(t, result.Fallback)
	assert.ErrorIs(t, result.Reason, ErrSourceUnavailable)
	assert.ErrorContains(t, result.Reason, "exceeds")
	assert.Equal(t, 101, d.Len())

	d = New()
	result = NewLoader(
		WithSource(memSource{"big.txt": content}),
		WithMaxSourceSize(int64(len(content))),
	).Load(context.Background(), d, "big.txt")

	assert.False(t, result.Fallback)
	assert.Equal(t, 12, d.CryptSize())
}

func TestLoader_MalformedExports(t *testing.T) {
	sources := memSource{
		"broken.json": `{"name": "half`,
		"shape.json":  `{"name": "x", "crypt": "not a list"}`,
	}
	loader := NewLoader(WithSource(sources), WithResolver(testResolver))

	_, _, _, err := loader.Parse(context.Background(), "broken.json")
	assert.ErrorIs(t, err, ErrEmptyResult)

	_, _, _, err = loader.Parse(context.Background(), "shape.json")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
