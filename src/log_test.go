package tracker

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmitLogSingleFile(t *testing.T) {
	var fname = filepath.Join(t.TempDir(), "tx.log")

	var txlog, err = NewTransmitLog(fname)
	require.NoError(t, err)
	defer txlog.Close()

	var when = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, txlog.Record(when,
		Callsign{Base: "N0CALL", SSID: 9},
		Callsign{Base: "APZMDR"},
		[]Callsign{{Base: "WIDE1", SSID: 1}, {Base: "WIDE2", SSID: 2}},
		[]byte("=4906.14N/12238.19W>")))
	txlog.Close()

	var f, openErr = os.Open(fname)
	require.NoError(t, openErr)
	defer f.Close()

	var records, readErr = csv.NewReader(f).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, records, 2, "header plus one record")

	assert.Equal(t, logCSVHeader, records[0])
	assert.Equal(t, "N0CALL-9", records[1][2])
	assert.Equal(t, "APZMDR", records[1][3])
	assert.Equal(t, "WIDE1-1,WIDE2-2", records[1][4])
	assert.Equal(t, "=4906.14N/12238.19W>", records[1][5])
	assert.Equal(t, "2024-06-01T12:00:00Z", records[1][1])
}

func TestTransmitLogDailyNames(t *testing.T) {
	var dir = t.TempDir()

	var txlog, err = NewTransmitLog(dir)
	require.NoError(t, err)
	defer txlog.Close()

	var day1 = time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	var day2 = time.Date(2024, 6, 2, 0, 1, 0, 0, time.UTC)

	require.NoError(t, txlog.Record(day1, Callsign{Base: "N0CALL"}, Callsign{Base: "APZMDR"}, nil, []byte("a")))
	require.NoError(t, txlog.Record(day2, Callsign{Base: "N0CALL"}, Callsign{Base: "APZMDR"}, nil, []byte("b")))
	txlog.Close()

	var entries, readErr = os.ReadDir(dir)
	require.NoError(t, readErr)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "2024-06-01.log")
	assert.Contains(t, names, "2024-06-02.log")
}

func TestTransmitLogAppends(t *testing.T) {
	var fname = filepath.Join(t.TempDir(), "tx.log")

	var txlog, err = NewTransmitLog(fname)
	require.NoError(t, err)
	require.NoError(t, txlog.Record(time.Now(), Callsign{Base: "N0CALL"}, Callsign{Base: "APZMDR"}, nil, []byte("one")))
	txlog.Close()

	// A second run appends instead of truncating, and only writes
	// the header once.
	txlog, err = NewTransmitLog(fname)
	require.NoError(t, err)
	require.NoError(t, txlog.Record(time.Now(), Callsign{Base: "N0CALL"}, Callsign{Base: "APZMDR"}, nil, []byte("two")))
	txlog.Close()

	var data, readErr = os.ReadFile(fname)
	require.NoError(t, readErr)

	assert.Equal(t, 1, strings.Count(string(data), "utime"))
	assert.Contains(t, string(data), "one")
	assert.Contains(t, string(data), "two")
}
