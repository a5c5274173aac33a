package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estoquepro/estoque-api/pkg/textutil"
)

func TestNormalize_RemoveAcentosEMinusculas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pá de Carregamento", "pa de carregamento"},
		{"CAFÉ TORRADO", "cafe torrado"},
		{"Açúcar Cristal", "acucar cristal"},
		{"sem acento", "sem acento"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, textutil.Normalize(c.in), "entrada: %q", c.in)
	}
}
