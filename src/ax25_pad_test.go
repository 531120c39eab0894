package tracker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseCallsign(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Callsign
		wantErr  bool
	}{
		{"plain", "WB2OSZ", Callsign{Base: "WB2OSZ"}, false},
		{"with ssid", "WB2OSZ-15", Callsign{Base: "WB2OSZ", SSID: 15}, false},
		{"lower case folded", "wb2osz-7", Callsign{Base: "WB2OSZ", SSID: 7}, false},
		{"digipeater alias", "WIDE1-1", Callsign{Base: "WIDE1", SSID: 1}, false},
		{"single character", "K", Callsign{Base: "K"}, false},
		{"ssid sixteen", "WB2OSZ-16", Callsign{}, true},
		{"ssid negative", "WB2OSZ--1", Callsign{}, true},
		{"seven characters", "ABCDEFG", Callsign{}, true},
		{"punctuation", "WB2/SZ", Callsign{}, true},
		{"empty", "", Callsign{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c, err = ParseCallsign(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadCallsign)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestCallsignString(t *testing.T) {
	assert.Equal(t, "WB2OSZ", Callsign{Base: "WB2OSZ"}.String())
	assert.Equal(t, "WB2OSZ-9", Callsign{Base: "WB2OSZ", SSID: 9}.String())
}

// The worked example from the tracker firmware: the TOCALL "APZMDR"
// in the destination slot, more addresses following.
func TestCallsignEncode(t *testing.T) {
	var c = Callsign{Base: "APZMDR", SSID: 0}
	var a = c.encode(false)
	assert.Equal(t, [7]byte{0x82, 0xa0, 0xb4, 0x9a, 0x88, 0xa4, 0x60}, a)
}

func TestCallsignEncodePadsShortBase(t *testing.T) {
	var c = Callsign{Base: "K1A", SSID: 5}
	var a = c.encode(true)

	assert.Equal(t, byte('K')<<1, a[0])
	assert.Equal(t, byte('1')<<1, a[1])
	assert.Equal(t, byte('A')<<1, a[2])
	for i := 3; i < 6; i++ {
		assert.Equal(t, byte(' ')<<1, a[i], "octet %d must be shifted space padding", i)
	}

	// SSID 5, reserved bits set, end-of-address set.
	assert.Equal(t, byte(SSID_RR_MASK|5<<1|SSID_LAST_MASK), a[6])
}

func TestBuildUIFrame(t *testing.T) {
	var src = Callsign{Base: "N0CALL", SSID: 9}
	var dst = Callsign{Base: "APZMDR"}
	var path = []Callsign{{Base: "WIDE1", SSID: 1}, {Base: "WIDE2", SSID: 2}}

	var frame, err = build_ui_frame(src, dst, path, []byte("T#001,0.000,0.000,0.000,0.000,0.000,00000000"))
	require.NoError(t, err)

	// 4 addresses, control, PID, info, FCS.
	assert.Len(t, frame, 4*7+2+44+2)

	// Destination first.
	assert.Equal(t, []byte{0x82, 0xa0, 0xb4, 0x9a, 0x88, 0xa4, 0x60}, frame[0:7])

	// Control and PID after the addresses.
	assert.Equal(t, byte(AX25_UI_FRAME), frame[28])
	assert.Equal(t, byte(AX25_PID_NO_LAYER3), frame[29])

	// FCS residue must check out over the whole frame.
	assert.True(t, fcs_check(frame))
}

// Exactly one address carries the end-of-address bit and it is the
// last one, for every legal chain length.
func TestEndOfAddressBit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var nHops = rapid.IntRange(0, AX25_MAX_HOPS).Draw(t, "nHops")

		var path = make([]Callsign, nHops)
		for i := range path {
			path[i] = Callsign{Base: "WIDE1", SSID: 1}
		}

		var frame, err = build_ui_frame(
			Callsign{Base: "N0CALL"}, Callsign{Base: "APZMDR"}, path, []byte("x"))
		require.NoError(t, err)

		var n = 2 + nHops
		for i := 0; i < n; i++ {
			var ssidOctet = frame[i*7+6]
			if i == n-1 {
				assert.Equal(t, byte(SSID_LAST_MASK), ssidOctet&SSID_LAST_MASK, "address %d of %d must end the chain", i, n)
			} else {
				assert.Zero(t, ssidOctet&SSID_LAST_MASK, "address %d of %d must not end the chain", i, n)
			}
		}
	})
}

func TestBuildUIFrameInfoBoundary(t *testing.T) {
	var src = Callsign{Base: "N0CALL"}
	var dst = Callsign{Base: "APZMDR"}

	var info256 = bytes.Repeat([]byte("a"), AX25_MAX_INFO_LEN)
	var frame, err = build_ui_frame(src, dst, nil, info256)
	require.NoError(t, err)
	assert.Len(t, frame, 2*7+2+256+2)

	var info257 = bytes.Repeat([]byte("a"), AX25_MAX_INFO_LEN+1)
	_, err = build_ui_frame(src, dst, nil, info257)
	assert.ErrorIs(t, err, ErrInfoTooLong)
}

func TestBuildUIFrameTooManyHops(t *testing.T) {
	var path = make([]Callsign, AX25_MAX_HOPS+1)
	for i := range path {
		path[i] = Callsign{Base: "WIDE1", SSID: 1}
	}

	var _, err = build_ui_frame(Callsign{Base: "N0CALL"}, Callsign{Base: "APZMDR"}, path, []byte("x"))
	assert.ErrorIs(t, err, ErrTooManyHops)
}

func TestBuildUIFrameBadCallsign(t *testing.T) {
	var _, err = build_ui_frame(Callsign{Base: "bad-call"}, Callsign{Base: "APZMDR"}, nil, []byte("x"))
	assert.ErrorIs(t, err, ErrBadCallsign)

	_, err = build_ui_frame(Callsign{Base: "N0CALL", SSID: 16}, Callsign{Base: "APZMDR"}, nil, []byte("x"))
	assert.ErrorIs(t, err, ErrBadCallsign)
}

func TestBuildUIFrameSixCharCallsign(t *testing.T) {
	// A full six character base gets no space padding.
	var frame, err = build_ui_frame(Callsign{Base: "AB0CDE"}, Callsign{Base: "APZMDR"}, nil, []byte("x"))
	require.NoError(t, err)

	var srcField = frame[7:13]
	assert.Equal(t, []byte{'A' << 1, 'B' << 1, '0' << 1, 'C' << 1, 'D' << 1, 'E' << 1}, srcField)
}
