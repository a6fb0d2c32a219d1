package eticket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"eticket-service/pkg/eticket"
)

func TestNameSanitizer_Sanitize(t *testing.T) {
	s := eticket.NewNameSanitizer(eticket.DefaultFirstNameWhitelist, nil)

	tests := []struct {
		input string
		want  string
	}{
		{"PEREZ/JOSE CIUDAD DE PANAMA PANAMA", "PEREZ/JOSE"},
		{"PEREZ/JOSE (VE)", "PEREZ/JOSE"},
		{"PEREZ/PANAMA", "PEREZ/"},
		{"GARCIA/MARIA ELENA (LIMA PERU)", "GARCIA/MARIA ELENA"},
		{"GARCIA/MARIA ELENA (CARACAS) (VE)", "GARCIA/MARIA ELENA"},
		{"PEREZ / JOSE  LUIS", "PEREZ/JOSE LUIS"},
		{"PEREZ/JOSE LUIS CARACAS VENEZUELA", "PEREZ/JOSE LUIS"},
		{"PEREZ/JOSE BOGOTÁ", "PEREZ/JOSE"},
		{"LOPEZ/SANTIAGO", "LOPEZ/SANTIAGO"},
		{"LOPEZ/SANTIAGO CHILE", "LOPEZ/SANTIAGO"},
		{"  JOSE   PEREZ  (CARACAS VE) ", "JOSE PEREZ"},
		{"JOSE PANAMA", "JOSE PANAMA"},
		{"LOPEZ JUAN (VE)", "LOPEZ JUAN (VE)"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.input))
		})
	}
}

func TestNameSanitizer_WhitelistOverride(t *testing.T) {
	plain := eticket.NewNameSanitizer(nil, nil)
	assert.Equal(t, "PEREZ/", plain.Sanitize("PEREZ/PANAMA"))

	custom := eticket.NewNameSanitizer([]string{"panama"}, nil)
	assert.Equal(t, "PEREZ/PANAMA", custom.Sanitize("PEREZ/PANAMA"))
}

func TestNameSanitizer_CustomLocationTokens(t *testing.T) {
	s := eticket.NewNameSanitizer(nil, []string{"GOTHAM"})

	assert.Equal(t, "WAYNE/BRUCE", s.Sanitize("WAYNE/BRUCE GOTHAM"))
	assert.Equal(t, "PEREZ/JOSE PANAMA", s.Sanitize("PEREZ/JOSE PANAMA"))
}

func TestNameSanitizer_Idempotent(t *testing.T) {
	s := eticket.NewNameSanitizer(eticket.DefaultFirstNameWhitelist, nil)
	words := []string{
		"PEREZ", "JOSE", "MARIA", "PANAMA", "CIUDAD", "DE", "CARACAS", "SANTIAGO",
		"/", " / ", "(", ")", "(VE)", "(LIMA PERU)", " ", "  ", "\t", "BOGOTÁ",
	}

	rapid.Check(t, func(t *rapid.T) {
		var input string
		if rapid.Bool().Draw(t, "arbitrary") {
			input = rapid.String().Draw(t, "input")
		} else {
			parts := rapid.SliceOfN(rapid.SampledFrom(words), 0, 12).Draw(t, "parts")
			for _, p := range parts {
				input += p + " "
			}
		}

		once := s.Sanitize(input)
		assert.Equal(t, once, s.Sanitize(once), "input %q", input)
	})
}
