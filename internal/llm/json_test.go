package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type proposal struct {
	SignpostCode string  `json:"signpost_code"`
	Confidence   float64 `json:"confidence"`
}

func TestExtractJSONArray_Plain(t *testing.T) {
	var out []proposal
	err := ExtractJSONArray(`[{"signpost_code":"CAP-01","confidence":0.9}]`, &out)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "CAP-01", out[0].SignpostCode)
	assert.Equal(t, 0.9, out[0].Confidence)
}

func TestExtractJSONArray_MarkdownFences(t *testing.T) {
	text := "```json\n[{\"signpost_code\":\"SEC-02\",\"confidence\":0.4}]\n```"

	var out []proposal
	err := ExtractJSONArray(text, &out)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "SEC-02", out[0].SignpostCode)
}

func TestExtractJSONArray_SurroundingProse(t *testing.T) {
	text := `Here are the matches I found:
[{"signpost_code":"AGT-03","confidence":0.7}]
Let me know if you need anything else.`

	var out []proposal
	err := ExtractJSONArray(text, &out)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestExtractJSONArray_EmptyArray(t *testing.T) {
	var out []proposal
	err := ExtractJSONArray("[]", &out)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestExtractJSONArray_Unparseable(t *testing.T) {
	cases := []string{
		"",
		"no json here",
		"{\"an\":\"object, not an array\"}",
		"[{broken",
	}
	for _, c := range cases {
		var out []proposal
		err := ExtractJSONArray(c, &out)
		assert.ErrorIs(t, err, ErrUnparseable, "input %q", c)
	}
}
