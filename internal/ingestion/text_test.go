package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Title\n## Subtitle\nContent here"
	result := CleanText(input)

	assert.Contains(t, result, "# Title")
	assert.Contains(t, result, "## Subtitle")
	assert.Contains(t, result, "Content here")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n- Item 2\n* Item 3\n• Item 4"
	result := CleanText(input)

	assert.Equal(t, "- Item 1\n- Item 2\n* Item 3\n- Item 4", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t  multiple    spaces")
	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	result := CleanText("Intro\n    Indented   line\n  - nested   bullet")
	assert.Equal(t, "Intro\n    Indented line\n  - nested bullet", result)
}

func TestCleanText_ComplexFormatting(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "complex_formatting.txt"))
	require.NoError(t, err)

	result := CleanText(string(content))

	assert.Contains(t, result, "#  Senior Software Engineer")
	assert.Contains(t, result, "Jane Doe | Berlin, Germany")
	assert.Contains(t, result, "## Experience")
	assert.Contains(t, result, "- Go experience building payment services")
	assert.Contains(t, result, "  - Led a team of 5")
	assert.Contains(t, result, "* Go (5+ years)")
	assert.Contains(t, result, "- PostgreSQL tuning")
	assert.Contains(t, result, "    B.Sc. Computer Science, 2015")
	assert.NotContains(t, result, "\r")
	assert.NotContains(t, result, "\n\n\n")
}

func TestIsBulletLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"- item", true},
		{"  * item", true},
		{"• item", true},
		{"· item", true},
		{"-item", false},
		{"plain text", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isBulletLine(tt.line))
		})
	}
}

func TestIngestFromFile_Success(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("# Jane Doe\n\nGo   engineer"), 0644))

	cleanedText, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, "# Jane Doe\n\nGo engineer", cleanedText)
	require.NotNil(t, metadata)
	assert.Equal(t, testFile, metadata.Source)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, 5, metadata.WordCount)
	assert.Len(t, metadata.Hash, 64)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	cleanedText, metadata, err := IngestFromFile("/nonexistent/file.txt")

	require.Error(t, err)
	assert.Empty(t, cleanedText)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_HTMLByExtension(t *testing.T) {
	cleanedText, metadata, err := IngestFromFile(filepath.Join("testdata", "cv.html"))
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, metadata.Format)
	assert.Contains(t, cleanedText, "# Jane Doe")
	assert.Contains(t, cleanedText, "Backend engineer with seven years of Go experience.")
	assert.Contains(t, cleanedText, "- PostgreSQL")
	assert.NotContains(t, cleanedText, "analytics")
	assert.NotContains(t, cleanedText, "Copyright")
}

func TestIngestFromFile_HTMLBySniffing(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("<html><body><p>Senior Go Engineer</p></body></html>"), 0644))

	cleanedText, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, metadata.Format)
	assert.Equal(t, "Senior Go Engineer", cleanedText)
}

func TestIngestFromFile_HashStability(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("Content 1"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("Content 2"), 0644))

	_, meta1, err := IngestFromFile(first)
	require.NoError(t, err)
	_, meta1Again, err := IngestFromFile(first)
	require.NoError(t, err)
	_, meta2, err := IngestFromFile(second)
	require.NoError(t, err)

	assert.Equal(t, meta1.Hash, meta1Again.Hash)
	assert.NotEqual(t, meta1.Hash, meta2.Hash)
}

func TestWriteOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	metadata := NewMetadata("Go engineer", "cv.txt", FormatText)

	require.NoError(t, WriteOutput(outDir, "cv", "Go engineer", metadata))

	text, err := os.ReadFile(filepath.Join(outDir, "cv.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Go engineer", string(text))

	meta, err := os.ReadFile(filepath.Join(outDir, "cv.meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"source": "cv.txt"`)
}
