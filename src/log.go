package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Diagnostic logging plus an optional log file of
 *		transmitted packets.
 *
 * Description: Rather than saving the raw, sometimes rather cryptic
 *		and unreadable, wire format, write separated properties
 *		into CSV format for easy reading and later processing.
 *
 *		There are two alternatives here.
 *
 *		A full file path writes everything to that one file.
 *
 *		A directory creates daily file names inside it.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	Prefix:          "aprs-tracker",
})

// SetLogLevel adjusts diagnostic verbosity for the whole package.
func SetLogLevel(level charmlog.Level) {
	logger.SetLevel(level)
}

func log_debug(msg string, keyvals ...any) { logger.Debug(msg, keyvals...) }
func log_info(msg string, keyvals ...any)  { logger.Info(msg, keyvals...) }
func log_warn(msg string, keyvals ...any)  { logger.Warn(msg, keyvals...) }
func log_error(msg string, keyvals ...any) { logger.Error(msg, keyvals...) }

// Pattern for daily transmit log names inside a directory.
const logDailyPattern = "%Y-%m-%d.log"

var logCSVHeader = []string{"utime", "isotime", "source", "destination", "path", "info"}

// TransmitLog appends one CSV record per transmitted packet.
type TransmitLog struct {
	dailyNames bool
	path       string // Directory, or full file name when dailyNames is false.

	openName string // File currently open, for detecting date rollover.
	file     *os.File
	csv      *csv.Writer
	pattern  *strftime.Strftime
}

/*------------------------------------------------------------------
 *
 * Name:	NewTransmitLog
 *
 * Purpose:	Initialization at start of application.
 *
 * Inputs:	path		- Log file name or just a directory.
 *				  An existing directory selects daily
 *				  names; any other path, even one with
 *				  a trailing separator, is opened as a
 *				  single file.
 *
 *------------------------------------------------------------------*/

func NewTransmitLog(path string) (*TransmitLog, error) {
	var t = &TransmitLog{path: path}

	var info, statErr = os.Stat(path)
	if statErr == nil && info.IsDir() {
		t.dailyNames = true
		var pattern, err = strftime.New(logDailyPattern)
		if err != nil {
			return nil, err
		}
		t.pattern = pattern
	}

	return t, nil
}

// Record writes one line for a packet that just went out.
func (t *TransmitLog) Record(now time.Time, src Callsign, dst Callsign, path []Callsign, info []byte) error {
	var name = t.path
	if t.dailyNames {
		name = filepath.Join(t.path, t.pattern.FormatString(now))
	}

	if t.file != nil && name != t.openName {
		// Date rolled over; start a new file.
		t.close()
	}

	if t.file == nil {
		var f, err = os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		t.file = f
		t.csv = csv.NewWriter(f)
		t.openName = name

		if pos, _ := f.Seek(0, 2); pos == 0 {
			t.csv.Write(logCSVHeader) //nolint:errcheck
		}
	}

	var hops = ""
	for i, h := range path {
		if i > 0 {
			hops += ","
		}
		hops += h.String()
	}

	var record = []string{
		fmt_utime(now),
		now.UTC().Format(time.RFC3339),
		src.String(),
		dst.String(),
		hops,
		string(info),
	}
	if err := t.csv.Write(record); err != nil {
		return err
	}
	t.csv.Flush()
	return t.csv.Error()
}

func fmt_utime(now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10)
}

func (t *TransmitLog) close() {
	if t.file != nil {
		t.csv.Flush()
		t.file.Close()
		t.file = nil
		t.csv = nil
		t.openName = ""
	}
}

// Close flushes and closes the underlying file.
func (t *TransmitLog) Close() {
	t.close()
}
