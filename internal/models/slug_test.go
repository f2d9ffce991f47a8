package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"turkish letters", "Kaçak Tespiti", "kacak-tespiti"},
		{"all special letters", "Şöför Güçü Çığır", "sofor-gucu-cigir"},
		{"dotless capital i", "İSTANBUL", "istanbul"},
		{"plain ascii", "Kombi Servisi", "kombi-servisi"},
		{"punctuation runs collapse", "Doğalgaz / Tesisatı!!", "dogalgaz-tesisati"},
		{"digits kept", "7/24 Acil Servis", "7-24-acil-servis"},
		{"leading and trailing noise", "  --Petek Temizliği-- ", "petek-temizligi"},
		{"empty", "", ""},
		{"only punctuation", "!?*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	slug := Slugify("Kaçak Tespiti")
	assert.Equal(t, slug, Slugify(slug))
}
