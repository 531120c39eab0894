package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePosition(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		symtab   byte
		symbol   byte
		phg      *PHG
		comment  string
		expected string
	}{
		{
			name:     "plain position",
			lat:      49.1023,
			lon:      -122.6365,
			symtab:   '/',
			symbol:   '>',
			expected: "=4906.14N/12238.19W>",
		},
		{
			name:     "with comment",
			lat:      49.1023,
			lon:      -122.6365,
			symtab:   '/',
			symbol:   'n',
			comment:  "ESP32 Tracker",
			expected: "=4906.14N/12238.19Wn" + "ESP32 Tracker",
		},
		{
			name:     "with phg",
			lat:      49.1023,
			lon:      -122.6365,
			symtab:   '/',
			symbol:   '>',
			phg:      &PHG{Power: 5, Height: 1, Gain: 3, Directivity: 2},
			expected: "=4906.14N/12238.19W>PHG5132",
		},
		{
			name:     "alternate table",
			lat:      0,
			lon:      0,
			symtab:   '\\',
			symbol:   '-',
			expected: `=0000.00N\00000.00E-`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var info, err = encode_position(tt.lat, tt.lon, tt.symtab, tt.symbol, tt.phg, tt.comment)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, info)
		})
	}
}

func TestEncodePositionBadCoordinate(t *testing.T) {
	var _, err = encode_position(95, 0, '/', '>', nil, "")
	assert.ErrorIs(t, err, ErrBadCoordinate)

	_, err = encode_position(0, 200, '/', '>', nil, "")
	assert.ErrorIs(t, err, ErrBadCoordinate)
}

func TestEncodePositionCommentTruncated(t *testing.T) {
	var long = strings.Repeat("x", 60)
	var info, err = encode_position(49.1023, -122.6365, '/', '>', nil, long)
	require.NoError(t, err)
	assert.Equal(t, "=4906.14N/12238.19W>"+strings.Repeat("x", MAX_COMMENT_LEN), info)
}

func TestPHGDataExtension(t *testing.T) {
	tests := []struct {
		name     string
		phg      PHG
		expected string
	}{
		{"typical", PHG{Power: 5, Height: 1, Gain: 3, Directivity: 2}, "PHG5132"},
		{"all zero", PHG{}, "PHG0000"},
		{"omni max", PHG{Power: 9, Height: 9, Gain: 9, Directivity: 8}, "PHG9998"},
		{"power out of range omits everything", PHG{Power: 10}, ""},
		{"directivity nine is invalid", PHG{Directivity: 9}, ""},
		{"negative omits everything", PHG{Gain: -1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, phg_data_extension(tt.phg))
		})
	}
}

func TestEncodeMessage(t *testing.T) {
	tests := []struct {
		name      string
		addressee string
		text      string
		id        string
		expected  string
	}{
		{
			name:      "addressee padded to nine",
			addressee: "N0CALL-9",
			text:      "hello",
			id:        "3",
			expected:  ":N0CALL-9 :hello{3",
		},
		{
			name:      "nine character addressee unpadded",
			addressee: "WB2OSZ-15",
			text:      "test",
			expected:  ":WB2OSZ-15:test",
		},
		{
			name:      "long addressee truncated",
			addressee: "VERYLONGCALL",
			text:      "x",
			expected:  ":VERYLONGC:x",
		},
		{
			name:      "no id means no brace",
			addressee: "CQ",
			text:      "anyone",
			expected:  ":CQ       :anyone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, encode_message(tt.addressee, tt.text, tt.id))
		})
	}
}
