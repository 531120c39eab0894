package tracker

/*------------------------------------------------------------------
 *
 * Purpose:	Construct APRS telemetry packets.
 *
 * Description:	The data packet carries five analog channels and
 *		eight digital bits:
 *
 *			T#042,3.700,21.500,1013.250,55.000,123.000,10100000
 *
 *		Channel names and units are advertised separately in
 *		telemetry definition packets.  Those take the APRS
 *		message form, addressed to the sending station itself:
 *
 *			:N0CALL-9 :PARM.Battery,Temp,Pressure,Humidity,Altitude{1
 *			:N0CALL-9 :UNIT.volts,deg.C,mbar,%,meters{2
 *
 * References:	APRS Protocol Reference, chapter 13.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

const (
	T_NUM_ANALOG  = 5
	T_NUM_DIGITAL = 8

	T_SEQ_MODULUS = 1000 /* Sequence is 000-999. */
)

// TelemetryData is one sample of all channels.
type TelemetryData struct {
	Analog  [T_NUM_ANALOG]float64
	Digital byte /* Bit 7 is rendered first. */
}

// Channel labels for the standard tracker sensor set.
var (
	DefaultTelemetryNames = [T_NUM_ANALOG]string{"Battery", "Temp", "Pressure", "Humidity", "Altitude"}
	DefaultTelemetryUnits = [T_NUM_ANALOG]string{"volts", "deg.C", "mbar", "%", "meters"}
)

/*------------------------------------------------------------------
 *
 * Name:	telemetry_data_packet
 *
 * Purpose:	Construct info part for a telemetry data report.
 *
 * Inputs:	seq	- Sequence number, wrapped to 000-999.
 *		d	- Channel values.
 *
 * Returns:	"T#SSS,a1,a2,a3,a4,a5,DDDDDDDD"
 *
 *----------------------------------------------------------------*/

func telemetry_data_packet(seq int, d TelemetryData) string {

	seq %= T_SEQ_MODULUS

	var digital [T_NUM_DIGITAL]byte
	for i := 0; i < T_NUM_DIGITAL; i++ {
		if d.Digital&(0x80>>i) != 0 {
			digital[i] = '1'
		} else {
			digital[i] = '0'
		}
	}

	return fmt.Sprintf("T#%03d,%.3f,%.3f,%.3f,%.3f,%.3f,%s",
		seq,
		d.Analog[0], d.Analog[1], d.Analog[2],
		d.Analog[3], d.Analog[4],
		digital[:])
}

/*------------------------------------------------------------------
 *
 * Name:	telemetry_parm_packet
 *		telemetry_unit_packet
 *
 * Purpose:	Construct info parts for the telemetry definition
 *		packets that give the channels their names and units.
 *
 * Inputs:	station	- The station the definitions apply to, which
 *			  is the addressee of the message.
 *		labels	- Five channel names or units.
 *		id	- Message identifier, empty to omit.
 *
 * Returns:	":ADDRESSEE:PARM.p1,p2,p3,p4,p5{id" and the UNIT
 *		equivalent.  The addressee occupies nine columns.
 *
 *----------------------------------------------------------------*/

func telemetry_parm_packet(station Callsign, labels [T_NUM_ANALOG]string, id string) string {
	return encode_message(station.String(), "PARM."+strings.Join(labels[:], ","), id)
}

func telemetry_unit_packet(station Callsign, labels [T_NUM_ANALOG]string, id string) string {
	return encode_message(station.String(), "UNIT."+strings.Join(labels[:], ","), id)
}
