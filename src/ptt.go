package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Key the transmitter.
 *
 * Description:	Three ways to assert PTT:
 *
 *		GPIO	- A line on a gpiochip character device.
 *			  Optionally a second "power down" line is
 *			  held high while the tracker runs, for radio
 *			  modules with a PD input.
 *
 *		Serial	- RTS or DTR on a serial port, the classic
 *			  soundcard TNC arrangement.
 *
 *		None	- For rendering to a file.
 *
 *		The active level is configurable; many radio modules
 *		key on a low level.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

// PTT keys and unkeys the transmitter.
type PTT interface {
	Set(transmit bool) error
	Close() error
}

// NullPTT is for sinks with no radio attached.
type NullPTT struct{}

func (NullPTT) Set(bool) error { return nil }
func (NullPTT) Close() error   { return nil }

/*
 * GPIO via the gpiochip character device.
 */

type GPIOPTT struct {
	ptt       *gpiocdev.Line
	pd        *gpiocdev.Line /* nil when the radio has no PD input. */
	activeLow bool
}

/*------------------------------------------------------------------
 *
 * Name:	NewGPIOPTT
 *
 * Purpose:	Open the PTT output and leave it in the unkeyed state.
 *
 * Inputs:	chip		- e.g. "gpiochip0".
 *		pttLine		- Line offset for PTT.
 *		activeLow	- True when a low level keys the radio.
 *		pdLine		- Line offset for module power-down,
 *				  or -1 for none.  Held high during
 *				  operation.
 *
 *----------------------------------------------------------------*/

func NewGPIOPTT(chip string, pttLine int, activeLow bool, pdLine int) (*GPIOPTT, error) {

	var g = &GPIOPTT{activeLow: activeLow}

	var initial = 0
	if activeLow {
		initial = 1
	}

	var ptt, err = gpiocdev.RequestLine(chip, pttLine,
		gpiocdev.AsOutput(initial),
		gpiocdev.WithConsumer("aprs-tracker-ptt"))
	if err != nil {
		return nil, fmt.Errorf("can't open PTT line %s:%d: %w", chip, pttLine, err)
	}
	g.ptt = ptt

	if pdLine >= 0 {
		var pd, pdErr = gpiocdev.RequestLine(chip, pdLine,
			gpiocdev.AsOutput(1),
			gpiocdev.WithConsumer("aprs-tracker-pd"))
		if pdErr != nil {
			ptt.Close()
			return nil, fmt.Errorf("can't open PD line %s:%d: %w", chip, pdLine, pdErr)
		}
		g.pd = pd
	}

	return g, nil
}

func (g *GPIOPTT) Set(transmit bool) error {
	var value = 0
	if transmit != g.activeLow {
		value = 1
	}
	return g.ptt.SetValue(value)
}

func (g *GPIOPTT) Close() error {
	g.Set(false) //nolint:errcheck
	if g.pd != nil {
		g.pd.Close()
	}
	return g.ptt.Close()
}

/*
 * RTS / DTR on a serial port.
 */

const (
	PTT_METHOD_RTS = "rts"
	PTT_METHOD_DTR = "dtr"
)

type SerialPTT struct {
	file      *os.File
	modemBit  int
	activeLow bool
}

func NewSerialPTT(device string, method string, activeLow bool) (*SerialPTT, error) {

	var bit int
	switch method {
	case PTT_METHOD_RTS:
		bit = unix.TIOCM_RTS
	case PTT_METHOD_DTR:
		bit = unix.TIOCM_DTR
	default:
		return nil, fmt.Errorf("%w: serial PTT method must be %q or %q", ErrBadConfig, PTT_METHOD_RTS, PTT_METHOD_DTR)
	}

	var f, err = os.OpenFile(device, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("can't open PTT device %s: %w", device, err)
	}

	var s = &SerialPTT{file: f, modemBit: bit, activeLow: activeLow}
	if err := s.Set(false); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *SerialPTT) Set(transmit bool) error {
	var fd = int(s.file.Fd())

	var stuff, err = unix.IoctlGetInt(fd, unix.TIOCMGET)
	if err != nil {
		return fmt.Errorf("PTT modem status read: %w", err)
	}
	if transmit != s.activeLow {
		stuff |= s.modemBit
	} else {
		stuff &= ^s.modemBit
	}
	if err := unix.IoctlSetPointerInt(fd, unix.TIOCMSET, stuff); err != nil {
		return fmt.Errorf("PTT modem status write: %w", err)
	}
	return nil
}

func (s *SerialPTT) Close() error {
	s.Set(false) //nolint:errcheck
	return s.file.Close()
}
