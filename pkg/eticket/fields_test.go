package eticket_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"eticket-service/pkg/eticket"
)

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

func TestExtractField(t *testing.T) {
	text := "Reservation Code: XKJ7PQ\nBooking Ref: OTHER1\nNotes:\nline one\nline two"

	tests := []struct {
		name     string
		patterns []*regexp.Regexp
		want     string
	}{
		{
			name:     "first match wins",
			patterns: patterns(`Reservation Code:\s*(\w+)`, `Booking Ref:\s*(\w+)`),
			want:     "XKJ7PQ",
		},
		{
			name:     "falls back to later pattern",
			patterns: patterns(`PNR:\s*(\w+)`, `Booking Ref:\s*(\w+)`),
			want:     "OTHER1",
		},
		{
			name:     "whole match without group",
			patterns: patterns(`XKJ7\w+`),
			want:     "XKJ7PQ",
		},
		{
			name:     "default when nothing matches",
			patterns: patterns(`PNR:\s*(\w+)`),
			want:     eticket.NotFound,
		},
		{
			name:     "empty capture is skipped",
			patterns: patterns(`Missing:\s*(\w*)|Notes:()`, `Booking Ref:\s*(\w+)`),
			want:     "OTHER1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eticket.ExtractField(text, tt.patterns, eticket.NotFound))
		})
	}
}

func TestExtractFieldSingleLine(t *testing.T) {
	text := "Notes:\nline one\nline two"
	greedy := patterns(`(?s)Notes:\s*(.*)`)

	assert.Equal(t, "line one\nline two", eticket.ExtractField(text, greedy, eticket.NotFound))
	assert.Equal(t, "line one", eticket.ExtractFieldSingleLine(text, greedy, eticket.NotFound))
}

func TestLookupField_EmptyPatternListPanics(t *testing.T) {
	assert.Panics(t, func() {
		eticket.LookupField("anything", nil)
	})
}

func TestExtractedFields_Legacy(t *testing.T) {
	fields := eticket.ExtractedFields{"numero_boleto": "5442100000001", "extra": "kept"}

	legacy := fields.Legacy([]string{"numero_boleto", "codigo_reservacion"})

	assert.Equal(t, map[string]string{
		"numero_boleto":      "5442100000001",
		"codigo_reservacion": eticket.NotFound,
		"extra":              "kept",
	}, legacy)

	_, found := fields.Get("codigo_reservacion")
	assert.False(t, found)
}
