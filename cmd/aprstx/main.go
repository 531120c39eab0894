package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Transmit APRS packets through a radio.
 *
 * Description:	Minimal outer loop around the tracker core: load the
 *		configuration, open the soundcard and the PTT line,
 *		send the requested packet, exit.  Scheduling repeated
 *		beacons is left to cron or a supervising process.
 *
 * Usage:	aprstx -c tracker.yaml --lat 49.1023 --lon -122.6365 --comment "On the road"
 *		aprstx -c tracker.yaml --telemetry 3.7,21.5,1013.25,55,123 --digital 160
 *		aprstx -c tracker.yaml --definitions
 *		aprstx -c tracker.yaml --message "N0CALL-9:hello"
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	tracker "github.com/jescarri/aprs-tracker/src"
)

func main() {
	var configPath = pflag.StringP("config", "c", "tracker.yaml", "Configuration file")

	var lat = pflag.Float64("lat", 91, "Latitude for a position report, decimal degrees")
	var lon = pflag.Float64("lon", 181, "Longitude for a position report, decimal degrees")
	var comment = pflag.String("comment", "", "Position comment, up to 43 characters")
	var phg = pflag.String("phg", "", "Power/height/gain/directivity digits, e.g. 5132")

	var telemetry = pflag.String("telemetry", "", "Five comma separated analog values")
	var digital = pflag.Int("digital", 0, "Digital telemetry bits, 0-255")
	var definitions = pflag.Bool("definitions", false, "Send telemetry PARM and UNIT definitions")

	var message = pflag.String("message", "", "APRS message as ADDRESSEE:text")
	var raw = pflag.String("raw", "", "Raw information field")

	pflag.Parse()

	var cfg, err = tracker.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aprstx: %s\n", err)
		os.Exit(1)
	}

	var ptt tracker.PTT = tracker.NullPTT{}
	switch {
	case cfg.PTTGPIOChip != "":
		var g, gErr = tracker.NewGPIOPTT(cfg.PTTGPIOChip, cfg.PTTGPIOLine, cfg.PTTActiveLow, cfg.PDGPIOLine)
		if gErr != nil {
			fmt.Fprintf(os.Stderr, "aprstx: %s\n", gErr)
			os.Exit(1)
		}
		ptt = g
	case cfg.PTTSerialDevice != "":
		var s, sErr = tracker.NewSerialPTT(cfg.PTTSerialDevice, cfg.PTTSerialMethod, cfg.PTTActiveLow)
		if sErr != nil {
			fmt.Fprintf(os.Stderr, "aprstx: %s\n", sErr)
			os.Exit(1)
		}
		ptt = s
	}
	defer ptt.Close()

	var sink = tracker.NewPortAudioSink()
	if err := sink.Init(cfg.SampleRate, 16, 1); err != nil {
		fmt.Fprintf(os.Stderr, "aprstx: %s\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	var t, trackerErr = buildTracker(cfg, sink, ptt)
	if trackerErr != nil {
		fmt.Fprintf(os.Stderr, "aprstx: %s\n", trackerErr)
		os.Exit(1)
	}
	defer t.Close()

	var sendErr error
	switch {
	case *telemetry != "":
		var data, parseErr = parseTelemetry(*telemetry, *digital)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "aprstx: %s\n", parseErr)
			os.Exit(1)
		}
		sendErr = t.SendTelemetry(data)

	case *definitions:
		sendErr = t.SendTelemetryDefinitions()

	case *message != "":
		var addressee, text, ok = strings.Cut(*message, ":")
		if !ok {
			fmt.Fprintln(os.Stderr, "aprstx: message must be ADDRESSEE:text")
			os.Exit(1)
		}
		sendErr = t.SendMessage(addressee, text)

	case *raw != "":
		sendErr = t.SendRaw([]byte(*raw))

	case *lat <= 90 && *lon <= 180:
		sendErr = t.SendPosition(*lat, *lon, *comment, parsePHG(*phg))

	default:
		pflag.Usage()
		os.Exit(2)
	}

	if sendErr != nil {
		fmt.Fprintf(os.Stderr, "aprstx: %s\n", sendErr)
		os.Exit(1)
	}
}

func buildTracker(cfg tracker.Config, sink tracker.AudioSink, ptt tracker.PTT) (*tracker.Tracker, error) {
	var mod, err = tracker.NewModulator(cfg.SampleRate, cfg.Amplitude)
	if err != nil {
		return nil, err
	}
	var tx = tracker.NewTransmitter(sink, ptt, mod, cfg.PreambleMS, cfg.TailMS)
	tx.SetPTTTiming(cfg.PTTLeadMS, cfg.PTTTrailMS)
	return tracker.NewTracker(cfg, tx)
}

func parseTelemetry(analog string, digital int) (tracker.TelemetryData, error) {
	var d tracker.TelemetryData

	var parts = strings.Split(analog, ",")
	if len(parts) != tracker.T_NUM_ANALOG {
		return d, fmt.Errorf("telemetry needs exactly %d analog values", tracker.T_NUM_ANALOG)
	}
	for i, p := range parts {
		var v, err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return d, fmt.Errorf("analog value %q: %w", p, err)
		}
		d.Analog[i] = v
	}

	if digital < 0 || digital > 255 {
		return d, fmt.Errorf("digital bits %d not in 0-255", digital)
	}
	d.Digital = byte(digital)
	return d, nil
}

func parsePHG(s string) *tracker.PHG {
	if len(s) != 4 {
		return nil
	}
	var digits [4]int
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil
		}
		digits[i] = int(s[i] - '0')
	}
	return &tracker.PHG{Power: digits[0], Height: digits[1], Gain: digits[2], Directivity: digits[3]}
}
