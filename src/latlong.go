package tracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Convert between numeric latitude / longitude and the
 *		fixed width strings used in APRS position reports.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
)

/*------------------------------------------------------------------
 *
 * Name:        latitude_to_str
 *
 * Purpose:     Convert numeric latitude to string for transmission.
 *
 * Inputs:      dlat		- Floating point degrees.
 *
 * Returns:	String in format ddmm.mm[NS].
 *		Always exactly 8 characters with leading zeros because
 *		the APRS position report has fixed width fields.
 *
 *----------------------------------------------------------------*/

func latitude_to_str(dlat float64) (string, error) {

	if dlat < -90 || dlat > 90 {
		return "", fmt.Errorf("%w: latitude %.4f not in [-90,90]", ErrBadCoordinate, dlat)
	}

	var hemi byte = 'N'
	if dlat < 0 {
		dlat = -dlat
		hemi = 'S'
	}

	var ideg = int(dlat)                    /* whole number of degrees. */
	var dmin = (dlat - float64(ideg)) * 60. /* Minutes after removing degrees. */

	// Minutes must be exactly like 99.99 with leading zeros
	// to keep the field fixed width.

	var smin = fmt.Sprintf("%05.2f", dmin)
	/* Due to roundoff, 59.9999 could come out as "60.00" */
	if smin[0] == '6' {
		smin = "00.00"
		ideg++
	}

	return fmt.Sprintf("%02d%s%c", ideg, smin, hemi), nil
}

/*------------------------------------------------------------------
 *
 * Name:        longitude_to_str
 *
 * Purpose:     Convert numeric longitude to string for transmission.
 *
 * Inputs:      dlong		- Floating point degrees.
 *
 * Returns:	String in format dddmm.mm[EW].
 *		Always exactly 9 characters with leading zeros.
 *
 *----------------------------------------------------------------*/

func longitude_to_str(dlong float64) (string, error) {

	if dlong < -180 || dlong > 180 {
		return "", fmt.Errorf("%w: longitude %.4f not in [-180,180]", ErrBadCoordinate, dlong)
	}

	var hemi byte = 'E'
	if dlong < 0 {
		dlong = -dlong
		hemi = 'W'
	}

	var ideg = int(dlong)
	var dmin = (dlong - float64(ideg)) * 60.

	var smin = fmt.Sprintf("%05.2f", dmin)
	/* Due to roundoff, 59.9999 could come out as "60.00" */
	if smin[0] == '6' {
		smin = "00.00"
		ideg++
	}

	return fmt.Sprintf("%03d%s%c", ideg, smin, hemi), nil
}

// parse_latitude is the inverse of latitude_to_str, for consumers
// that want degrees back from a position field.
func parse_latitude(s string) (float64, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("%w: latitude field %q is not 8 characters", ErrBadCoordinate, s)
	}
	var deg, err1 = strconv.Atoi(s[0:2])
	var min, err2 = strconv.ParseFloat(s[2:7], 64)
	if err1 != nil || err2 != nil || deg > 90 || min >= 60 {
		return 0, fmt.Errorf("%w: malformed latitude field %q", ErrBadCoordinate, s)
	}
	var dlat = float64(deg) + min/60.
	switch s[7] {
	case 'N':
		return dlat, nil
	case 'S':
		return -dlat, nil
	}
	return 0, fmt.Errorf("%w: latitude hemisphere %q", ErrBadCoordinate, s[7:])
}

func parse_longitude(s string) (float64, error) {
	if len(s) != 9 {
		return 0, fmt.Errorf("%w: longitude field %q is not 9 characters", ErrBadCoordinate, s)
	}
	var deg, err1 = strconv.Atoi(s[0:3])
	var min, err2 = strconv.ParseFloat(s[3:8], 64)
	if err1 != nil || err2 != nil || deg > 180 || min >= 60 {
		return 0, fmt.Errorf("%w: malformed longitude field %q", ErrBadCoordinate, s)
	}
	var dlong = float64(deg) + min/60.
	switch s[8] {
	case 'E':
		return dlong, nil
	case 'W':
		return -dlong, nil
	}
	return 0, fmt.Errorf("%w: longitude hemisphere %q", ErrBadCoordinate, s[8:])
}
