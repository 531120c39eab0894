package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Generate APRS transmissions as a .WAV audio file.
 *
 * Description:	Same packet construction as aprstx, but the AFSK
 *		audio goes to a file instead of a radio.  No PTT, no
 *		lead or trail delays.  Handy for feeding a soundcard
 *		TNC on the bench:
 *
 *			aprsgen -o z1.wav --callsign N0CALL --lat 49.1023 --lon -122.6365
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
	var outPath = pflag.StringP("output", "o", "aprs.wav", "Output .WAV file")
	var callsign = pflag.String("callsign", "", "Source callsign, e.g. N0CALL-9")

	var lat = pflag.Float64("lat", 91, "Latitude for a position report, decimal degrees")
	var lon = pflag.Float64("lon", 181, "Longitude for a position report, decimal degrees")
	var comment = pflag.String("comment", "", "Position comment, up to 43 characters")

	var telemetry = pflag.String("telemetry", "", "Five comma separated analog values")
	var digital = pflag.Int("digital", 0, "Digital telemetry bits, 0-255")
	var definitions = pflag.Bool("definitions", false, "Send telemetry PARM and UNIT definitions")

	var raw = pflag.String("raw", "", "Raw information field")

	pflag.Parse()

	var cfg = tracker.DefaultConfig()
	if *callsign != "" {
		var call, err = tracker.ParseCallsign(*callsign)
		if err != nil {
			fmt.Fprintf(os.Stderr, "aprsgen: %s\n", err)
			os.Exit(1)
		}
		cfg.Callsign = call.Base
		cfg.SSID = call.SSID
	}
	// There is no transmitter to settle, so don't sleep around the file.
	cfg.PTTLeadMS = 0
	cfg.PTTTrailMS = 0

	var sink = tracker.NewWAVFileSink(*outPath)
	if err := sink.Init(cfg.SampleRate, 16, 1); err != nil {
		fmt.Fprintf(os.Stderr, "aprsgen: %s\n", err)
		os.Exit(1)
	}

	var mod, modErr = tracker.NewModulator(cfg.SampleRate, cfg.Amplitude)
	if modErr != nil {
		fmt.Fprintf(os.Stderr, "aprsgen: %s\n", modErr)
		os.Exit(1)
	}
	var tx = tracker.NewTransmitter(sink, tracker.NullPTT{}, mod, cfg.PreambleMS, cfg.TailMS)
	tx.SetPTTTiming(cfg.PTTLeadMS, cfg.PTTTrailMS)

	var t, trackerErr = tracker.NewTracker(cfg, tx)
	if trackerErr != nil {
		fmt.Fprintf(os.Stderr, "aprsgen: %s\n", trackerErr)
		os.Exit(1)
	}
	defer t.Close()

	var sendErr error
	switch {
	case *telemetry != "":
		var data, parseErr = parseTelemetry(*telemetry, *digital)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "aprsgen: %s\n", parseErr)
			os.Exit(1)
		}
		sendErr = t.SendTelemetry(data)

	case *definitions:
		sendErr = t.SendTelemetryDefinitions()

	case *raw != "":
		sendErr = t.SendRaw([]byte(*raw))

	case *lat <= 90 && *lon <= 180:
		sendErr = t.SendPosition(*lat, *lon, *comment, nil)

	default:
		pflag.Usage()
		os.Exit(2)
	}

	if sendErr != nil {
		fmt.Fprintf(os.Stderr, "aprsgen: %s\n", sendErr)
		os.Exit(1)
	}

	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "aprsgen: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *outPath)
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
