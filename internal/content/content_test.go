package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	in := `<p onclick="steal()">Hello <strong>world</strong></p><script>alert(1)</script>`
	out := Sanitize(in)

	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "<strong>world</strong>")
}

func TestPlainText(t *testing.T) {
	in := "<h2>Intro</h2><p>First   paragraph.</p><ul><li>one</li><li>two</li></ul>"
	assert.Equal(t, "Intro First paragraph. one two", PlainText(in))
}

func TestExcerpt_Short(t *testing.T) {
	assert.Equal(t, "Just a line.", Excerpt("<p>Just a line.</p>"))
}

func TestExcerpt_Long(t *testing.T) {
	body := "<p>" + strings.Repeat("lorem ipsum ", 60) + "</p>"
	got := Excerpt(body)

	assert.True(t, strings.HasSuffix(got, "…"), "expected ellipsis, got %q", got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), ExcerptLength+1)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), " "))
}

func TestExcerpt_MultiByteWordBoundary(t *testing.T) {
	// the only space sits 60 runes in, which is 120 bytes of "é"
	body := "<p>" + strings.Repeat("é", 60) + " " + strings.Repeat("é", 300) + "</p>"
	got := Excerpt(body)

	assert.Equal(t, ExcerptLength+1, utf8.RuneCountInString(got), "excerpt %q", got)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank("<p></p>"))
	assert.True(t, IsBlank("  <p> <br> </p> "))
	assert.False(t, IsBlank("<p>x</p>"))
}
