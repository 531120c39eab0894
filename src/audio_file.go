package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Write the transmit audio to a .WAV file instead of a
 *		sound device.
 *
 * Description:	Useful for bench testing: the file can be played into
 *		a soundcard TNC or decoded directly.  The data length
 *		in the header is not known until the end, so the
 *		header is rewritten when the file is closed.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

type wav_header struct { /* .WAV file header. */
	Riff            [4]byte /* "RIFF" */
	Filesize        int32   /* file length - 8 */
	Wave            [4]byte /* "WAVE" */
	Fmt             [4]byte /* "fmt " */
	Fmtsize         int32   /* 16. */
	Wformattag      int16   /* 1 for PCM. */
	Nchannels       int16   /* 1 for mono, 2 for stereo. */
	Nsamplespersec  int32   /* sampling freq, Hz. */
	Navgbytespersec int32   /* = nblockalign * nsamplespersec. */
	Nblockalign     int16   /* = wbitspersample / 8 * nchannels. */
	Wbitspersample  int16   /* 16 or 8. */
	Data            [4]byte /* "data" */
	Datasize        int32   /* number of bytes following. */
}

// WAVFileSink implements AudioSink on top of a file.
type WAVFileSink struct {
	fname string

	file      *os.File
	buf       *bufio.Writer
	header    wav_header
	byteCount int /* Data bytes written; goes into the header at close. */
}

func NewWAVFileSink(fname string) *WAVFileSink {
	return &WAVFileSink{fname: fname}
}

func (w *WAVFileSink) Init(sampleRate int, bitsPerSample int, channels int) error {
	if bitsPerSample != 16 {
		return fmt.Errorf("%w: only 16 bit samples are supported, not %d", ErrBadConfig, bitsPerSample)
	}

	var f, err = os.Create(w.fname)
	if err != nil {
		return fmt.Errorf("%w: couldn't open %s for write: %v", ErrAudioFault, w.fname, err)
	}
	w.file = f

	copy(w.header.Riff[:], "RIFF")
	copy(w.header.Wave[:], "WAVE")
	copy(w.header.Fmt[:], "fmt ")
	w.header.Fmtsize = 16   // Always 16.
	w.header.Wformattag = 1 // 1 for PCM.
	w.header.Nchannels = int16(channels)
	w.header.Nsamplespersec = int32(sampleRate)
	w.header.Wbitspersample = int16(bitsPerSample)
	w.header.Nblockalign = w.header.Wbitspersample / 8 * w.header.Nchannels
	w.header.Navgbytespersec = int32(w.header.Nblockalign) * w.header.Nsamplespersec

	copy(w.header.Data[:], "data")

	/*
	 * Sizes are not known yet; they are fixed up at close.
	 */
	if err := binary.Write(w.file, binary.LittleEndian, w.header); err != nil {
		w.file.Close()
		w.file = nil
		return fmt.Errorf("%w: couldn't write header to %s: %v", ErrAudioFault, w.fname, err)
	}

	w.byteCount = 0
	w.buf = bufio.NewWriter(w.file)
	return nil
}

func (w *WAVFileSink) Write(samples []int16) (int, error) {
	if w.buf == nil {
		return 0, fmt.Errorf("%w: sink not initialized", ErrAudioFault)
	}
	for _, s := range samples {
		/* 16 bit is signed, little endian. */
		if err := w.buf.WriteByte(byte(s)); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrAudioFault, err)
		}
		if err := w.buf.WriteByte(byte(uint16(s) >> 8)); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrAudioFault, err)
		}
		w.byteCount += 2
	}
	return len(samples), nil
}

func (w *WAVFileSink) Drain() error {
	if w.buf == nil {
		return nil
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:        Close
 *
 * Purpose:     Go back to the beginning of the file and fill in the
 *		size of the data.
 *
 *----------------------------------------------------------------*/

func (w *WAVFileSink) Close() error {
	if w.file == nil {
		return nil
	}

	if err := w.Drain(); err != nil {
		return err
	}

	w.header.Filesize = int32(w.byteCount + binary.Size(w.header) - 8)
	w.header.Datasize = int32(w.byteCount)

	if _, err := w.file.Seek(0, 0); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}
	if err := binary.Write(w.file, binary.LittleEndian, w.header); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}

	var err = w.file.Close()
	w.file = nil
	w.buf = nil
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAudioFault, err)
	}
	return nil
}
