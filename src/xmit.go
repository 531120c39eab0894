package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Transmit frames.  Sequences PTT and audio for one
 *		transmission at a time.
 *
 * Description:	Each call to Send is one session:
 *
 *			key PTT
 *			wait for the transmitter to settle
 *			flag preamble			\
 *			frame with bit stuffing		 audio
 *			flag tail			/
 *			wait for the audio to drain
 *			wait the PTT tail time
 *			release PTT
 *
 *		The drain step matters: releasing PTT while the last
 *		flags are still sitting in the output buffer truncates
 *		the closing flag sequence and the whole frame is lost.
 *
 *		Nothing is queued here.  A second Send during a session
 *		is rejected and serialization is the caller's problem.
 *		A session can not be cancelled once started; aborting
 *		mid-frame would waste channel time on a corrupt packet.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	/* Delay from keying PTT to the first audio sample, letting
	   the transmitter's PA settle. */
	DEFAULT_PTT_LEAD_MS = 250

	/* Delay from the last drained sample to PTT release. */
	DEFAULT_PTT_TRAIL_MS = 120
)

/* Samples per block pulled from the modulator. */
const xmitBlockSize = 1024

/* How long to wait before retrying a partial write. */
const xmitBackoff = 2 * time.Millisecond

// Transmitter owns the audio sink, the PTT line, and the modulator
// for one radio channel.
type Transmitter struct {
	sink AudioSink
	ptt  PTT
	mod  *Modulator

	preambleMS int
	tailMS     int
	pttLeadMS  int
	pttTrailMS int

	busy atomic.Bool
}

func NewTransmitter(sink AudioSink, ptt PTT, mod *Modulator, preambleMS int, tailMS int) *Transmitter {
	return &Transmitter{
		sink:       sink,
		ptt:        ptt,
		mod:        mod,
		preambleMS: preambleMS,
		tailMS:     tailMS,
		pttLeadMS:  DEFAULT_PTT_LEAD_MS,
		pttTrailMS: DEFAULT_PTT_TRAIL_MS,
	}
}

// SetPTTTiming overrides the lead and trail delays around a session.
func (t *Transmitter) SetPTTTiming(leadMS int, trailMS int) {
	t.pttLeadMS = leadMS
	t.pttTrailMS = trailMS
}

/*------------------------------------------------------------------
 *
 * Name:        Send
 *
 * Purpose:     Transmit one assembled frame.
 *
 * Inputs:	frame	- Output of build_ui_frame.  Borrowed for the
 *			  duration of the call; the caller must not
 *			  touch it until Send returns.
 *
 * Returns:	nil after PTT has been released again.
 *		ErrBusy immediately when a session is in progress.
 *		ErrAudioFault when the sink failed; PTT is forced off
 *		and no retry is attempted here.  APRS is best effort
 *		and the outer loop decides whether to try again.
 *
 *----------------------------------------------------------------*/

func (t *Transmitter) Send(frame []byte) error {

	if !t.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer t.busy.Store(false)

	var enc = NewHDLCEncoder(frame, t.preambleMS, t.tailMS)

	if err := t.ptt.Set(true); err != nil {
		t.ptt.Set(false) //nolint:errcheck
		return fmt.Errorf("keying PTT: %w", err)
	}

	time.Sleep(time.Duration(t.pttLeadMS) * time.Millisecond)

	t.mod.StartSession(enc)

	var block [xmitBlockSize]int16
	for t.mod.Active() {
		var n = t.mod.PullSamples(block[:])

		for off := 0; off < n; {
			var accepted, err = t.sink.Write(block[off:n])
			if err != nil {
				return t.abort(err)
			}
			off += accepted
			if off < n {
				/* Device buffers full; let them play down. */
				time.Sleep(xmitBackoff)
			}
		}
	}

	// The last samples may still be queued in the device.  PTT must
	// not drop until they have actually left.
	if err := t.sink.Drain(); err != nil {
		return t.abort(err)
	}

	time.Sleep(time.Duration(t.pttTrailMS) * time.Millisecond)

	if err := t.ptt.Set(false); err != nil {
		return fmt.Errorf("releasing PTT: %w", err)
	}

	return nil
}

// abort forces PTT off after a sink failure.
func (t *Transmitter) abort(cause error) error {
	t.mod.EndSession()
	t.ptt.Set(false) //nolint:errcheck
	if !errors.Is(cause, ErrAudioFault) {
		cause = fmt.Errorf("%w: %w", ErrAudioFault, cause)
	}
	log_error("session aborted", "err", cause)
	return fmt.Errorf("session aborted: %w", cause)
}

/*------------------------------------------------------------------
 *
 * Name:        XmitDurationMS
 *
 * Purpose:     Estimate how long a frame will keep the channel busy,
 *		for duty cycle decisions in the outer loop.
 *
 *----------------------------------------------------------------*/

func (t *Transmitter) XmitDurationMS(frame []byte) int {
	var bits = 8*max(1, flags_for_ms(t.preambleMS)) +
		stuffed_bit_count(frame) +
		8*max(1, flags_for_ms(t.tailMS))
	return t.pttLeadMS + bits*1000/BITRATE + t.pttTrailMS
}
