package deck

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KazantsevJS/mindflip/internal/store"
)

var exportTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "deck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	bio, err := s.Subjects().Create(ctx, store.SubjectInput{Name: "Biology"})
	require.NoError(t, err)
	cells, err := s.Topics().Create(ctx, store.TopicInput{Name: "Cells", SubjectID: bio.ID, Color: "#00aa55"})
	require.NoError(t, err)
	_, err = s.Cards().Create(ctx, store.CardInput{
		Question: "What is the powerhouse of the cell?", Answer: "Mitochondria", TopicID: cells.ID, DifficultyLevel: 2,
	})
	require.NoError(t, err)
	_, err = s.Cards().Create(ctx, store.CardInput{
		Question: "What holds genetic material?", Answer: "The nucleus", TopicID: cells.ID,
	})
	require.NoError(t, err)
	_, err = s.Topics().Create(ctx, store.TopicInput{Name: "Genetics", SubjectID: bio.ID})
	require.NoError(t, err)
	_, err = s.Subjects().Create(ctx, store.SubjectInput{Name: "History", Color: "#1e90ff"})
	require.NoError(t, err)
}

func exportBytes(t *testing.T, s *store.Store, f Format) []byte {
	t.Helper()
	doc, err := Export(context.Background(), s, exportTime)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, f))
	return buf.Bytes()
}

func TestExportJSON(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", exportBytes(t, s, JSON))
}

func TestExportEmptyStore(t *testing.T) {
	doc, err := Export(context.Background(), openStore(t), exportTime)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, doc.Version)
	assert.NotNil(t, doc.Subjects)
	assert.Empty(t, doc.Subjects)
}

func TestYAMLExportImportsIntoFreshStore(t *testing.T) {
	src := openStore(t)
	seed(t, src)
	yamlDoc := exportBytes(t, src, YAML)

	doc, err := Decode(bytes.NewReader(yamlDoc), YAML)
	require.NoError(t, err)

	dst := openStore(t)
	res, err := Import(context.Background(), dst, doc)
	require.NoError(t, err)
	assert.Equal(t, Result{Subjects: 2, Topics: 2, Cards: 2}, res)

	assert.Equal(t, string(exportBytes(t, src, JSON)), string(exportBytes(t, dst, JSON)))
}

func TestImportAppends(t *testing.T) {
	s := openStore(t)
	seed(t, s)
	ctx := context.Background()

	doc, err := Decode(strings.NewReader(`{"version":"v1.2.0","subjects":[{"name":"Biology","topics":[{"name":"Extra","cards":[{"question":"q","answer":"a"}]}]}]}`), JSON)
	require.NoError(t, err)
	res, err := Import(ctx, s, doc)
	require.NoError(t, err)
	assert.Equal(t, Result{Subjects: 1, Topics: 1, Cards: 1}, res)

	subjects, err := s.Subjects().List(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 3)
	assert.Equal(t, "Biology", subjects[2].Name)
	assert.Equal(t, 2, subjects[2].Position)
	assert.Equal(t, store.DefaultColor, subjects[2].Color)

	topics, err := s.Topics().ListBySubject(ctx, subjects[2].ID)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	cards, err := s.Cards().ListByTopic(ctx, topics[0].ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, store.DefaultDifficulty, cards[0].DifficultyLevel)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `{"version":`, ErrInvalidDocument},
		{"missing version", `{"subjects":[]}`, ErrInvalidDocument},
		{"unprefixed version", `{"version":"1.0.0","subjects":[]}`, ErrInvalidDocument},
		{"bad color", `{"version":"v1.0.0","subjects":[{"name":"A","color":"red"}]}`, ErrInvalidDocument},
		{"empty name", `{"version":"v1.0.0","subjects":[{"name":""}]}`, ErrInvalidDocument},
		{"difficulty out of range", `{"version":"v1.0.0","subjects":[{"name":"A","topics":[{"name":"T","cards":[{"question":"q","answer":"a","difficulty_level":9}]}]}]}`, ErrInvalidDocument},
		{"unknown field", `{"version":"v1.0.0","subjects":[{"name":"A","ease_factor":2.5}]}`, ErrInvalidDocument},
		{"newer major", `{"version":"v2.0.0","subjects":[]}`, ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), JSON)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeYAMLRejects(t *testing.T) {
	_, err := Decode(strings.NewReader("version: v1.0.0\nsubjects:\n  - color: '#fff'\n"), YAML)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = Decode(strings.NewReader("version: [unclosed"), YAML)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestImportRejectsVersion(t *testing.T) {
	_, err := Import(context.Background(), openStore(t), &Document{Version: "v0.9.0"})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"deck.json", JSON},
		{"deck.yaml", YAML},
		{"/tmp/deck.YML", YAML},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
	_, err := FormatFromPath("deck.csv")
	assert.Error(t, err)
}
