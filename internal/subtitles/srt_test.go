package subtitles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError bool
		errorContains string
		expectedCues  []Cue
	}{
		{
			name: "success - two cues",
			input: "1\n" +
				"00:00:01,000 --> 00:00:04,000\n" +
				"Guten Morgen!\n" +
				"\n" +
				"2\n" +
				"00:00:05,500 --> 00:00:08,250\n" +
				"Wie geht es dir?\n",
			expectedError: false,
			expectedCues: []Cue{
				{Index: 0, StartMS: 1000, EndMS: 4000, Text: "Guten Morgen!"},
				{Index: 1, StartMS: 5500, EndMS: 8250, Text: "Wie geht es dir?"},
			},
		},
		{
			name: "success - multi-line cue text joined with newline",
			input: "1\n" +
				"00:00:01,000 --> 00:00:04,000\n" +
				"Erste Zeile\n" +
				"zweite Zeile\n",
			expectedError: false,
			expectedCues: []Cue{
				{Index: 0, StartMS: 1000, EndMS: 4000, Text: "Erste Zeile\nzweite Zeile"},
			},
		},
		{
			name: "success - CRLF line endings and BOM",
			input: "\uFEFF1\r\n" +
				"00:00:00,500 --> 00:00:02,000\r\n" +
				"Hallo Welt\r\n" +
				"\r\n",
			expectedError: false,
			expectedCues: []Cue{
				{Index: 0, StartMS: 500, EndMS: 2000, Text: "Hallo Welt"},
			},
		},
		{
			name: "success - dot accepted as millisecond separator",
			input: "1\n" +
				"00:01:00.000 --> 00:01:02.500\n" +
				"Tschüss\n",
			expectedError: false,
			expectedCues: []Cue{
				{Index: 0, StartMS: 60000, EndMS: 62500, Text: "Tschüss"},
			},
		},
		{
			name: "success - file cue numbering is ignored",
			input: "7\n" +
				"00:00:01,000 --> 00:00:02,000\n" +
				"Eins\n" +
				"\n" +
				"3\n" +
				"00:00:03,000 --> 00:00:04,000\n" +
				"Zwei\n",
			expectedError: false,
			expectedCues: []Cue{
				{Index: 0, StartMS: 1000, EndMS: 2000, Text: "Eins"},
				{Index: 1, StartMS: 3000, EndMS: 4000, Text: "Zwei"},
			},
		},
		{
			name:          "success - empty input produces no cues",
			input:         "",
			expectedError: false,
			expectedCues:  nil,
		},
		{
			name: "success - cue without text is dropped",
			input: "1\n" +
				"00:00:01,000 --> 00:00:02,000\n" +
				"\n" +
				"2\n" +
				"00:00:03,000 --> 00:00:04,000\n" +
				"Text\n",
			expectedError: false,
			expectedCues: []Cue{
				{Index: 0, StartMS: 3000, EndMS: 4000, Text: "Text"},
			},
		},
		{
			name: "error - start after end",
			input: "1\n" +
				"00:00:05,000 --> 00:00:04,000\n" +
				"Kaputt\n",
			expectedError: true,
			errorContains: "after end",
		},
		{
			name: "error - malformed timestamp",
			input: "1\n" +
				"00:00:xx,000 --> 00:00:04,000\n" +
				"Kaputt\n",
			expectedError: true,
			errorContains: "invalid seconds",
		},
		{
			name: "error - timestamp out of range",
			input: "1\n" +
				"00:77:00,000 --> 00:78:00,000\n" +
				"Kaputt\n",
			expectedError: true,
			errorContains: "out of range",
		},
		{
			name: "error - text outside cue",
			input: "kein Untertitel\n" +
				"00:00:01,000 --> 00:00:02,000\n" +
				"Text\n",
			expectedError: true,
			errorContains: "unexpected text outside cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, err := Parse(strings.NewReader(tt.input))

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCues, cues)
		})
	}
}

func TestParse_PositionHints(t *testing.T) {
	input := "1\n" +
		"00:00:01,000 --> 00:00:04,000 X1:40 X2:600\n" +
		"Mit Positionsangabe\n"

	cues, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, cues, 1)
	assert.Equal(t, 1000, cues[0].StartMS)
	assert.Equal(t, 4000, cues[0].EndMS)
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and splits on punctuation",
			input:    "Guten Morgen, wie geht's?",
			expected: []string{"guten", "morgen", "wie", "geht", "s"},
		},
		{
			name:     "preserves umlauts and eszett",
			input:    "Ich heiße Müller",
			expected: []string{"ich", "heiße", "müller"},
		},
		{
			name:     "strips formatting tags",
			input:    "<i>Hallo</i> <b>Welt</b>",
			expected: []string{"hallo", "welt"},
		},
		{
			name:     "drops numbers",
			input:    "Es ist 15 Uhr",
			expected: []string{"es", "ist", "uhr"},
		},
		{
			name:     "empty text",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokens(tt.input))
		})
	}
}
