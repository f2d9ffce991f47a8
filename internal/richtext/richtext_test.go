package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	html := `<h2>Kombi Bakımı</h2><p>Kış öncesi   bakım <strong>önemlidir</strong>.</p>`

	got := PlainText(html)

	assert.Equal(t, "Kombi Bakımı Kış öncesi bakım önemlidir.", got)
}

func TestPlainText_StripsScriptAndStyle(t *testing.T) {
	html := `<p>Metin</p><script>alert(1)</script><style>p{color:red}</style>`

	assert.Equal(t, "Metin", PlainText(html))
}

func TestPlainText_PlainInputPassesThrough(t *testing.T) {
	assert.Equal(t, "Sade metin", PlainText("Sade   metin"))
}

func TestExcerpt(t *testing.T) {
	html := "<p>Doğalgaz tesisatı döşeme ve bakım hizmetlerimiz tüm ilçelerde devam ediyor</p>"

	got := Excerpt(html, 30)

	assert.True(t, len([]rune(got)) <= 31)
	assert.Contains(t, got, "…")
	assert.NotContains(t, got, "<p>")
}

func TestExcerpt_ShortContentUntouched(t *testing.T) {
	assert.Equal(t, "Kısa duyuru", Excerpt("<p>Kısa duyuru</p>", 100))
}

func TestExcerpt_ZeroLength(t *testing.T) {
	assert.Equal(t, "", Excerpt("<p>metin</p>", 0))
}
