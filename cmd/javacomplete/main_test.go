package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javacomplete/java/completion"
	"github.com/dhamidi/javacomplete/java/index"
)

func TestOffsetAt(t *testing.T) {
	text := []byte("class C {\n  // é\n  int x;\n}\n")
	tests := []struct {
		line, column int
		want         int
	}{
		{1, 1, 0},
		{1, 7, 6},
		{2, 6, 15},
		{2, 7, 17},
		{3, 3, 20},
		{4, 1, 27},
	}
	for _, tt := range tests {
		got, err := offsetAt(text, tt.line, tt.column)
		require.NoError(t, err, "%d:%d", tt.line, tt.column)
		assert.Equal(t, tt.want, got, "%d:%d", tt.line, tt.column)
	}

	_, err := offsetAt(text, 9, 1)
	assert.Error(t, err)
	_, err = offsetAt(text, 1, 40)
	assert.Error(t, err)
}

func TestCompletionOptionsFromConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("source.level", 17)
	viper.Set("completion.case-sensitive", false)
	viper.Set("completion.all-symbols", true)
	viper.Set("completion.skip-access-check", true)

	opts := completionOptions()
	assert.Equal(t, 17, opts.SourceLevel)
	assert.False(t, opts.CaseSensitive)
	assert.True(t, opts.Has(completion.AllSymbols))
	assert.True(t, opts.Has(completion.SkipAccessibilityCheck))
	assert.False(t, opts.Has(completion.Combined))
}

func TestScratchCompletesDeclaredLocals(t *testing.T) {
	s := &scratch{engine: completion.NewEngine(index.NewWithJDK()), opts: completion.DefaultOptions()}
	s.lines = []string{`String greeting = "hi";`}

	line := []rune("greeting.toU")
	suffixes, length := s.Do(line, len(line))
	assert.Equal(t, 3, length)
	var got []string
	for _, r := range suffixes {
		got = append(got, string(r))
	}
	require.NotEmpty(t, got)
	for _, suffix := range got {
		assert.True(t, strings.HasPrefix(suffix, "pperCase("), suffix)
	}

	line = []rune("gree")
	suffixes, length = s.Do(line, len(line))
	assert.Equal(t, 4, length)
	assert.Contains(t, suffixes, []rune("ting"))
}

func TestWriteText(t *testing.T) {
	items := []item{
		{Kind: "KEYWORD", Label: "true", Insert: "true", Detail: "KEYWORD", Smart: true},
		{Kind: "TYPE", Label: "List", Insert: "List", Detail: "java.util.List", NeedsImport: "java.util.List"},
	}
	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, items, 72))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "* true"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  List"), lines[1])
	assert.Equal(t, "    java.util.List", lines[2])
	assert.Equal(t, "    import java.util.List", lines[3])
}
