package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "acme_gmbh_2024_07_31.docx", "acme_gmbh_2024_07_31.docx"},
		{"single quote", "o'brien consulting", `o\'brien consulting`},
		{"backslash", `acme\co`, `acme\\co`},
		{"backslash before quote", `acme\'s`, `acme\\\'s`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeQuery(tc.in))
		})
	}
}
