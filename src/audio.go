package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Interface to the audio output device.
 *
 * Description:	The modulator produces blocks of signed 16 bit
 *		samples.  An AudioSink carries them to a soundcard,
 *		a file, or a test harness.  Write hands over as much
 *		as the sink will take right now; Drain does not return
 *		until everything already accepted has been physically
 *		emitted.  PTT must stay keyed until Drain returns or
 *		the end of the closing flags is cut off.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// AudioSink is the digital audio output consumed by the transmitter.
type AudioSink interface {
	// Init is called once before the first session.
	Init(sampleRate int, bitsPerSample int, channels int) error

	// Write hands samples to the device.  It may accept fewer than
	// len(samples) when device buffers are full.
	Write(samples []int16) (int, error)

	// Drain blocks until all accepted samples have been emitted.
	Drain() error

	Close() error
}

/* Samples per chunk handed to the device. */
const paFramesPerBuffer = 1024

// PortAudioSink plays samples on the default output device.
type PortAudioSink struct {
	stream  *portaudio.Stream
	buf     []int16
	pending []int16
	started bool
}

func NewPortAudioSink() *PortAudioSink {
	return &PortAudioSink{}
}

func (p *PortAudioSink) Init(sampleRate int, bitsPerSample int, channels int) error {
	if bitsPerSample != 16 {
		return fmt.Errorf("%w: only 16 bit samples are supported, not %d", ErrBadConfig, bitsPerSample)
	}
	if channels != 1 {
		return fmt.Errorf("%w: only mono output is supported, not %d channels", ErrBadConfig, channels)
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}

	p.buf = make([]int16, paFramesPerBuffer)

	var stream, err = portaudio.OpenDefaultStream(0, channels, float64(sampleRate), len(p.buf), &p.buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}
	p.stream = stream
	return nil
}

func (p *PortAudioSink) Write(samples []int16) (int, error) {
	if p.stream == nil {
		return 0, fmt.Errorf("%w: sink not initialized", ErrAudioFault)
	}

	if !p.started {
		if err := p.stream.Start(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrAudioFault, err)
		}
		p.started = true
	}

	p.pending = append(p.pending, samples...)

	for len(p.pending) >= len(p.buf) {
		copy(p.buf, p.pending[:len(p.buf)])
		p.pending = p.pending[len(p.buf):]
		if err := p.stream.Write(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrAudioFault, err)
		}
	}

	return len(samples), nil
}

func (p *PortAudioSink) Drain() error {
	if p.stream == nil || !p.started {
		return nil
	}

	// Pad the last partial chunk with silence so nothing is held back.
	if len(p.pending) > 0 {
		var n = copy(p.buf, p.pending)
		for i := n; i < len(p.buf); i++ {
			p.buf[i] = 0
		}
		p.pending = p.pending[:0]
		if err := p.stream.Write(); err != nil {
			return fmt.Errorf("%w: %v", ErrAudioFault, err)
		}
	}

	// Stop waits for pending device buffers to play out.
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}
	p.started = false
	return nil
}

func (p *PortAudioSink) Close() error {
	if p.stream != nil {
		p.stream.Close()
		p.stream = nil
	}
	return portaudio.Terminate()
}
