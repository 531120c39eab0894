package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Tie the pieces together: one value that owns the
 *		station configuration, the telemetry and message
 *		counters, and the transmitter.
 *
 * Description:	All operations are synchronous; they return after PTT
 *		has been released.  The tracker never decides *when*
 *		to transmit - that is the outer loop's job.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"time"
)

type Tracker struct {
	cfg  Config
	src  Callsign
	dst  Callsign
	path []Callsign

	tx    *Transmitter
	txlog *TransmitLog /* nil when not configured. */

	telemetrySeq int /* 0-999, wraps. */
	messageID    int /* 1-999, wraps; stamps definition packets. */
}

/*------------------------------------------------------------------
 *
 * Name:	NewTracker
 *
 * Purpose:	Validate the configuration snapshot and take
 *		ownership of the transmitter.
 *
 *----------------------------------------------------------------*/

func NewTracker(cfg Config, tx *Transmitter) (*Tracker, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var src, _ = cfg.Source()
	var dst, _ = ParseCallsign(cfg.Tocall)
	var path, _ = cfg.Path()

	var t = &Tracker{
		cfg:       cfg,
		src:       src,
		dst:       dst,
		path:      path,
		tx:        tx,
		messageID: 1,
	}

	if cfg.TxLog != "" {
		var txlog, err = NewTransmitLog(cfg.TxLog)
		if err != nil {
			return nil, fmt.Errorf("%w: tx_log: %v", ErrBadConfig, err)
		}
		t.txlog = txlog
	}

	log_info("tracker ready", "source", src.String(), "destination", dst.String(), "hops", len(path))

	return t, nil
}

// Close releases resources other than the sink and PTT, which belong
// to whoever constructed the transmitter.
func (t *Tracker) Close() {
	if t.txlog != nil {
		t.txlog.Close()
	}
}

// transmit builds a UI frame around an info field and sends it.
func (t *Tracker) transmit(info []byte) error {

	var frame, err = build_ui_frame(t.src, t.dst, t.path, info)
	if err != nil {
		return err
	}

	log_debug("transmitting", "source", t.src.String(), "info", string(info))

	if err := t.tx.Send(frame); err != nil {
		return err
	}

	if t.txlog != nil {
		if err := t.txlog.Record(time.Now(), t.src, t.dst, t.path, info); err != nil {
			log_warn("transmit log write failed", "err", err)
		}
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	SendPosition
 *
 * Purpose:	Transmit a position report without timestamp.
 *
 * Inputs:	lat, lon - Decimal degrees.
 *		comment	 - Free text, up to 43 characters.
 *		phg	 - Optional propagation descriptor, nil to omit.
 *
 *----------------------------------------------------------------*/

func (t *Tracker) SendPosition(lat float64, lon float64, comment string, phg *PHG) error {
	var info, err = encode_position(lat, lon, t.cfg.SymbolTable[0], t.cfg.Symbol[0], phg, comment)
	if err != nil {
		return err
	}
	return t.transmit([]byte(info))
}

// SendTelemetry transmits one telemetry data packet.  The sequence
// number advances afterwards, wrapping at 1000.
func (t *Tracker) SendTelemetry(d TelemetryData) error {
	var info = telemetry_data_packet(t.telemetrySeq, d)
	if err := t.transmit([]byte(info)); err != nil {
		return err
	}
	t.telemetrySeq = (t.telemetrySeq + 1) % T_SEQ_MODULUS
	return nil
}

// TelemetrySequence reports the sequence number the next data packet
// will carry.
func (t *Tracker) TelemetrySequence() int {
	return t.telemetrySeq
}

// SetTelemetrySequence overrides the counter, for callers that
// persist it across restarts.
func (t *Tracker) SetTelemetrySequence(seq int) {
	t.telemetrySeq = ((seq % T_SEQ_MODULUS) + T_SEQ_MODULUS) % T_SEQ_MODULUS
}

/*------------------------------------------------------------------
 *
 * Name:	SendTelemetryDefinitions
 *
 * Purpose:	Transmit the PARM and UNIT packets that give the
 *		telemetry channels their names.  Sent at startup and
 *		periodically so receivers that missed them catch up.
 *
 *----------------------------------------------------------------*/

func (t *Tracker) SendTelemetryDefinitions() error {

	var parm = telemetry_parm_packet(t.src, DefaultTelemetryNames, t.nextMessageID())
	if err := t.transmit([]byte(parm)); err != nil {
		return err
	}

	var unit = telemetry_unit_packet(t.src, DefaultTelemetryUnits, t.nextMessageID())
	return t.transmit([]byte(unit))
}

// SendMessage transmits an APRS message to another station.
func (t *Tracker) SendMessage(addressee string, text string) error {
	var info = encode_message(addressee, text, t.nextMessageID())
	return t.transmit([]byte(info))
}

// SendRaw transmits an arbitrary information field.
func (t *Tracker) SendRaw(info []byte) error {
	return t.transmit(info)
}

// nextMessageID returns the current id and advances, wrapping 1-999.
func (t *Tracker) nextMessageID() string {
	var id = t.messageID
	t.messageID = t.messageID%999 + 1
	return strconv.Itoa(id)
}
