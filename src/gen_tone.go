package tracker

/*------------------------------------------------------------------
 *
 * Purpose:     Convert the HDLC bit stream to Bell 202 AFSK audio
 *		samples.
 *
 * Description:	Direct digital synthesis.  A 16 bit phase accumulator
 *		advances by a per-tone increment each sample and its
 *		top eight bits index a 256 entry sine table.  The
 *		increment only changes at bit boundaries and the
 *		accumulator is never reset mid-session, so the output
 *		is continuous-phase FSK with no discontinuity at tone
 *		changes.
 *
 *		NRZI sits between the HDLC encoder and tone selection:
 *		a zero bit switches between mark and space, a one bit
 *		keeps the current tone.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"math"
)

const (
	MARK_FREQ  = 1200 /* Hz */
	SPACE_FREQ = 2200 /* Hz */
	BITRATE    = 1200 /* bits per second */

	/* 1200 x 88 gives an integer number of samples per bit. */
	DEFAULT_SAMPLE_RATE = 105600

	DEFAULT_AMPLITUDE = 100 /* Percent of full scale. */
)

/*
 * 8 bit sine samples are unsigned, biased around 127.
 * They are widened to signed 16 bit when shipped to the audio sink.
 */

var sine_table = func() [256]uint8 {
	var table [256]uint8
	for j := 0; j < 256; j++ {
		var a = (float64(j) / 256.0) * (2.0 * math.Pi)
		table[j] = uint8(math.Round(math.Sin(a)*127 + 127))
	}
	return table
}()

// Modulator owns the phase accumulator, sample index, and current
// tone for one radio channel.  During a session it is driven only by
// the audio subsystem pulling samples.
type Modulator struct {
	samplesPerBit int
	deltaMark     uint16 /* Phase increment for 1200 Hz. */
	deltaSpace    uint16 /* Phase increment for 2200 Hz. */
	amplitude     int

	phaseAcc    uint16
	phaseInc    uint16
	sampleIndex int
	toneSpace   bool /* NRZI state; sessions start on mark. */

	enc *HDLCEncoder /* nil when no session is active. */
}

/*------------------------------------------------------------------
 *
 * Name:        NewModulator
 *
 * Purpose:     Calculate the constants for audio tone generation.
 *
 * Inputs:      sampleRate	- Samples per second.  Must be an
 *				  integer multiple of the bit rate.
 *		amplitude	- Signal amplitude on scale of 1 .. 100.
 *
 *----------------------------------------------------------------*/

func NewModulator(sampleRate int, amplitude int) (*Modulator, error) {

	if sampleRate <= 0 || sampleRate%BITRATE != 0 {
		return nil, fmt.Errorf("%w: sample rate %d is not a multiple of %d", ErrBadConfig, sampleRate, BITRATE)
	}
	if amplitude < 1 || amplitude > 100 {
		return nil, fmt.Errorf("%w: amplitude %d not in 1-100", ErrBadConfig, amplitude)
	}

	return &Modulator{
		samplesPerBit: sampleRate / BITRATE,
		deltaMark:     phase_increment(MARK_FREQ, sampleRate),
		deltaSpace:    phase_increment(SPACE_FREQ, sampleRate),
		amplitude:     amplitude,
	}, nil
}

// phase_increment is the accumulator step for one tone:
// round(freq x 2^16 / sampleRate).
func phase_increment(freq int, sampleRate int) uint16 {
	return uint16((freq<<16 + sampleRate/2) / sampleRate)
}

// SamplesPerBit reports how many audio samples one bit occupies.
func (m *Modulator) SamplesPerBit() int {
	return m.samplesPerBit
}

// StartSession attaches a bit stream.  The tone starts on mark and
// the phase starts at zero; neither is touched again except by
// sample generation until the stream ends.
func (m *Modulator) StartSession(enc *HDLCEncoder) {
	m.enc = enc
	m.phaseAcc = 0
	m.phaseInc = m.deltaMark
	m.toneSpace = false
	m.sampleIndex = 0
}

// Active reports whether a session still has bits to render.
func (m *Modulator) Active() bool {
	return m.enc != nil
}

// EndSession discards any remaining bit stream.
func (m *Modulator) EndSession() {
	m.enc = nil
}

/*------------------------------------------------------------------
 *
 * Name:        PullSamples
 *
 * Purpose:     Produce the next block of audio for the current
 *		session.  The audio subsystem calls this each time it
 *		needs a refill.
 *
 * Inputs:	buf	- Block to fill.
 *
 * Returns:	Number of samples produced.  Less than len(buf) only
 *		at end of session; 0 once the stream is exhausted.
 *
 *----------------------------------------------------------------*/

func (m *Modulator) PullSamples(buf []int16) int {

	if m.enc == nil {
		return 0
	}

	var n = 0
	for n < len(buf) {
		if m.sampleIndex == 0 {
			var bit, ok = m.enc.nextBit()
			if !ok {
				m.enc = nil
				return n
			}
			if bit == 0 {
				m.toneSpace = !m.toneSpace
			}
			if m.toneSpace {
				m.phaseInc = m.deltaSpace
			} else {
				m.phaseInc = m.deltaMark
			}
		}

		m.phaseAcc += m.phaseInc
		var sam = int(sine_table[m.phaseAcc>>8])

		buf[n] = int16((sam - 127) * 258 * m.amplitude / 100)
		n++

		m.sampleIndex++
		if m.sampleIndex == m.samplesPerBit {
			m.sampleIndex = 0
		}
	}
	return n
}
