package tracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Construct APRS information fields from components.
 *
 * References:	APRS Protocol Reference.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

// Longest comment we will put in a position report.
const MAX_COMMENT_LEN = 43

// PHG holds the Power / Height / Gain / Directivity propagation
// descriptor.  Each code is a single digit; directivity 0-8.
type PHG struct {
	Power       int
	Height      int
	Gain        int
	Directivity int
}

/*------------------------------------------------------------------
 *
 * Name:        phg_data_extension
 *
 * Purpose:     Fill in the optional PHG data extension.
 *
 * Inputs:      p	- Power, height, gain, directivity codes.
 *
 * Returns:	"PHGphgd" or empty string when any code is outside
 *		its single digit range.  The whole extension is
 *		omitted rather than sending a partial one.
 *
 *----------------------------------------------------------------*/

func phg_data_extension(p PHG) string {

	if p.Power < 0 || p.Power > 9 ||
		p.Height < 0 || p.Height > 9 ||
		p.Gain < 0 || p.Gain > 9 ||
		p.Directivity < 0 || p.Directivity > 8 {
		return ""
	}

	return fmt.Sprintf("PHG%d%d%d%d", p.Power, p.Height, p.Gain, p.Directivity)
}

/*------------------------------------------------------------------
 *
 * Name:        encode_position
 *
 * Purpose:     Construct info part for a position report without
 *		timestamp.
 *
 * Inputs: 	dlat	- Latitude, decimal degrees.
 *		dlong	- Longitude, decimal degrees.
 *		symtab	- Symbol table id, '/' or '\'.
 *		symbol	- Symbol code.
 *		phg	- Optional propagation descriptor, nil for none.
 *		comment	- Free text, truncated at MAX_COMMENT_LEN.
 *
 * Returns:	"=ddmm.mmN/dddmm.mmWs[PHGphgd][comment]"
 *
 *----------------------------------------------------------------*/

func encode_position(dlat float64, dlong float64, symtab byte, symbol byte, phg *PHG, comment string) (string, error) {

	var slat, err = latitude_to_str(dlat)
	if err != nil {
		return "", err
	}
	var slong, lonErr = longitude_to_str(dlong)
	if lonErr != nil {
		return "", lonErr
	}

	if symtab != '/' && symtab != '\\' {
		log_warn("Symbol table identifier is not / or \\", "symtab", string(symtab))
		symtab = '/'
	}
	if symbol < '!' || symbol > '~' {
		log_warn("Symbol code is not in range of ! to ~", "symbol", string(symbol))
		symbol = '/' // dot
	}

	var sb strings.Builder
	sb.WriteByte('=')
	sb.WriteString(slat)
	sb.WriteByte(symtab)
	sb.WriteString(slong)
	sb.WriteByte(symbol)

	if phg != nil {
		sb.WriteString(phg_data_extension(*phg))
	}

	if len(comment) > MAX_COMMENT_LEN {
		log_warn("Comment truncated", "max", MAX_COMMENT_LEN, "len", len(comment))
		comment = comment[:MAX_COMMENT_LEN]
	}
	sb.WriteString(comment)

	return sb.String(), nil
}

/*------------------------------------------------------------------
 *
 * Name:        encode_message
 *
 * Purpose:     Construct info part for APRS "message" format.
 *
 * Inputs:      addressee	- Addressed to, up to 9 characters.
 *		text		- Text part of the message.
 *		id		- Identifier, 0 to 5 characters.
 *
 * Returns:	":addressee:text{id"
 *		The addressee field occupies exactly 9 columns.
 *
 *----------------------------------------------------------------*/

func encode_message(addressee string, text string, id string) string {
	var result = fmt.Sprintf(":%-9.9s:%s", addressee, text)

	if len(id) > 0 {
		result += "{" + id
	}

	return result
}
