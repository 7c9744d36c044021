package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		lang i18n.Lang
		in   string
		want string
	}{
		{name: "english spaces", lang: i18n.English, in: "Smart Watch Pro", want: "smart-watch-pro"},
		{name: "english ampersand", lang: i18n.English, in: "Mindfulness & Meditation", want: "mindfulness-and-meditation"},
		{name: "english keeps digits", lang: i18n.English, in: "Hiking Backpack 40L", want: "hiking-backpack-40l"},
		{name: "spanish accents", lang: i18n.Spanish, in: "Batería Portátil 20000mAh", want: "bateria-portatil-20000mah"},
		{name: "spanish keeps ampersand", lang: i18n.Spanish, in: "A & B", want: "a-&-b"},
		{name: "spanish capital accent", lang: i18n.Spanish, in: "Estrategias de Éxito", want: "estrategias-de-exito"},
		{name: "unknown language uses english rules", lang: "fr", in: "Salt & Pepper", want: "salt-and-pepper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.lang, tt.in))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	long := strings.Repeat("ñandú ", 60)

	got := Slugify(i18n.Spanish, long)
	assert.Len(t, []rune(got), MaxSlugLen)
	assert.NotContains(t, got, " ")
}
