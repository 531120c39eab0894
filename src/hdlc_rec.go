package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Recover frames from a transmitted bit stream.
 *
 * Description:	The inverse of hdlc_send, kept minimal: locate the
 *		flag delimiters, remove stuffed zeros, repack octets
 *		LSB first, and keep whatever passes the FCS check.
 *		The round trip through this decoder is how the
 *		serializer is verified; there is no over-the-air
 *		receive path in this tracker.
 *
 *---------------------------------------------------------------*/

// nrzi_decode converts a tone sequence back into logical bits:
// a change of tone is a 0, no change is a 1.  The bit before the
// first tone is undefined, so the output is one shorter.
func nrzi_decode(tones []int) []int {
	if len(tones) == 0 {
		return nil
	}
	var bits = make([]int, 0, len(tones)-1)
	for i := 1; i < len(tones); i++ {
		if tones[i] == tones[i-1] {
			bits = append(bits, 1)
		} else {
			bits = append(bits, 0)
		}
	}
	return bits
}

// flag_at tests for the 01111110 pattern, LSB first.
func flag_at(bits []int, i int) bool {
	if i+8 > len(bits) {
		return false
	}
	for j, want := range [8]int{0, 1, 1, 1, 1, 1, 1, 0} {
		if bits[i+j] != want {
			return false
		}
	}
	return true
}

/*------------------------------------------------------------------
 *
 * Name:	hdlc_find_frames
 *
 * Purpose:	Extract every valid frame from a pre-NRZI bit stream.
 *
 * Inputs:	bits	- Transmitted bits: preamble flags, stuffed
 *			  frame, tail flags, possibly repeated.
 *
 * Returns:	Frames that unstuffed to a whole number of octets and
 *		passed the FCS residue check.  FCS octets included.
 *
 *----------------------------------------------------------------*/

func hdlc_find_frames(bits []int) [][]byte {

	var frames [][]byte

	var i = 0
	var segStart = -1 /* First bit after the latest flag. */

	for i < len(bits) {
		if flag_at(bits, i) {
			if segStart >= 0 && i > segStart {
				if frame := unstuff_segment(bits[segStart:i]); frame != nil {
					frames = append(frames, frame)
				}
			}
			i += 8
			segStart = i
			continue
		}
		i++
	}

	return frames
}

// unstuff_segment removes inserted zeros and repacks octets.
// Returns nil unless the result is a plausible frame with good FCS.
func unstuff_segment(bits []int) []byte {

	var out []byte
	var acc byte
	var nbits int
	var ones int

	for _, b := range bits {
		if ones == 5 {
			ones = 0
			if b == 0 {
				continue /* Stuffed; drop it. */
			}
			return nil /* Six ones outside a flag is an error. */
		}

		if b == 1 {
			ones++
		} else {
			ones = 0
		}

		acc |= byte(b) << nbits
		nbits++
		if nbits == 8 {
			out = append(out, acc)
			acc = 0
			nbits = 0
		}
	}

	if nbits != 0 {
		return nil /* Not a whole number of octets. */
	}

	/* Smallest UI frame: two addresses, control, PID, FCS. */
	if len(out) < 2*7+2+2 {
		return nil
	}
	if !fcs_check(out) {
		return nil
	}
	return out
}
