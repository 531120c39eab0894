package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Tracker configuration.
 *
 * Description:	A flat YAML record.  Everything has a usable default
 *		except the callsign; validation happens once at load
 *		and any violation is reported as ErrBadConfig before
 *		the radio is touched.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TOCALL identifying this firmware family in the destination slot.
const DEFAULT_TOCALL = "APZMDR"

type Config struct {
	Callsign string `yaml:"callsign"` /* Source base callsign, required. */
	SSID     int    `yaml:"ssid"`     /* 0-15. */

	Symbol      string `yaml:"symbol"`       /* Single character map symbol. */
	SymbolTable string `yaml:"symbol_table"` /* "/" primary or "\" alternate. */

	Path1 string `yaml:"path1"` /* Digipeater hops, e.g. "WIDE1-1". */
	Path2 string `yaml:"path2"` /* Empty string means omit. */

	PreambleMS int `yaml:"preamble_ms"` /* Pre-frame flag duration, 100-1000. */
	TailMS     int `yaml:"tail_ms"`     /* Post-frame flag duration, 10-500. */

	Tocall string `yaml:"tocall"`

	/* Audio output. */
	SampleRate int `yaml:"sample_rate"`
	Amplitude  int `yaml:"amplitude"` /* Percent of full scale. */

	/* PTT hardware.  GPIO when ptt_gpio_chip is set, serial when
	   ptt_serial_device is set, otherwise none. */
	PTTGPIOChip     string `yaml:"ptt_gpio_chip"`
	PTTGPIOLine     int    `yaml:"ptt_gpio_line"`
	PDGPIOLine      int    `yaml:"pd_gpio_line"` /* -1 for none. */
	PTTActiveLow    bool   `yaml:"ptt_active_low"`
	PTTSerialDevice string `yaml:"ptt_serial_device"`
	PTTSerialMethod string `yaml:"ptt_serial_method"` /* "rts" or "dtr". */

	PTTLeadMS  int `yaml:"ptt_lead_ms"`
	PTTTrailMS int `yaml:"ptt_trail_ms"`

	/* Transmit log file or directory.  Empty disables. */
	TxLog string `yaml:"tx_log"`
}

// DefaultConfig matches the values baked into the original tracker
// firmware.
func DefaultConfig() Config {
	return Config{
		SymbolTable:  "/",
		Symbol:       "n", /* Car. */
		Path1:        "WIDE1-1",
		Path2:        "WIDE2-2",
		PreambleMS:   350,
		TailMS:       50,
		Tocall:       DEFAULT_TOCALL,
		SampleRate:   DEFAULT_SAMPLE_RATE,
		Amplitude:    DEFAULT_AMPLITUDE,
		PDGPIOLine:   -1,
		PTTActiveLow: true,
		PTTLeadMS:    DEFAULT_PTT_LEAD_MS,
		PTTTrailMS:   DEFAULT_PTT_TRAIL_MS,
	}
}

// LoadConfig reads a YAML file over the defaults and validates.
func LoadConfig(path string) (Config, error) {
	var c = DefaultConfig()

	var data, err = os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrBadConfig, path, err)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) Validate() error {

	if _, err := c.Source(); err != nil {
		return fmt.Errorf("%w: callsign: %v", ErrBadConfig, err)
	}
	if _, err := ParseCallsign(c.Tocall); err != nil {
		return fmt.Errorf("%w: tocall: %v", ErrBadConfig, err)
	}

	if len(c.Symbol) != 1 || c.Symbol[0] < '!' || c.Symbol[0] > '~' {
		return fmt.Errorf("%w: symbol must be a single printable character", ErrBadConfig)
	}
	if c.SymbolTable != "/" && c.SymbolTable != `\` {
		return fmt.Errorf("%w: symbol_table must be / or \\", ErrBadConfig)
	}

	if _, err := c.Path(); err != nil {
		return err
	}

	if c.PreambleMS < 100 || c.PreambleMS > 1000 {
		return fmt.Errorf("%w: preamble_ms %d not in 100-1000", ErrBadConfig, c.PreambleMS)
	}
	if c.TailMS < 10 || c.TailMS > 500 {
		return fmt.Errorf("%w: tail_ms %d not in 10-500", ErrBadConfig, c.TailMS)
	}

	if c.SampleRate%BITRATE != 0 {
		return fmt.Errorf("%w: sample_rate %d is not a multiple of %d", ErrBadConfig, c.SampleRate, BITRATE)
	}
	if c.Amplitude < 1 || c.Amplitude > 100 {
		return fmt.Errorf("%w: amplitude %d not in 1-100", ErrBadConfig, c.Amplitude)
	}

	if c.PTTSerialDevice != "" &&
		c.PTTSerialMethod != PTT_METHOD_RTS && c.PTTSerialMethod != PTT_METHOD_DTR {
		return fmt.Errorf("%w: ptt_serial_method must be rts or dtr", ErrBadConfig)
	}

	if c.PTTLeadMS < 0 || c.PTTTrailMS < 0 {
		return fmt.Errorf("%w: PTT lead and trail times must not be negative", ErrBadConfig)
	}

	return nil
}

// Source is the configured station identity.
func (c *Config) Source() (Callsign, error) {
	var call = Callsign{Base: c.Callsign, SSID: c.SSID}
	if err := call.check(); err != nil {
		return Callsign{}, err
	}
	return call, nil
}

// Path assembles the digipeater hops, omitting empty entries.
func (c *Config) Path() ([]Callsign, error) {
	var path []Callsign
	for _, p := range []string{c.Path1, c.Path2} {
		if p == "" {
			continue
		}
		var hop, err = ParseCallsign(p)
		if err != nil {
			return nil, fmt.Errorf("%w: path hop %q: %v", ErrBadConfig, p, err)
		}
		if hop.SSID < 1 || hop.SSID > 7 {
			return nil, fmt.Errorf("%w: path hop %q SSID must be 1-7", ErrBadConfig, p)
		}
		path = append(path, hop)
	}
	return path, nil
}
