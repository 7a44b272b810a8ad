// Package protocol implements the UART exchange spoken by the AES test design.
//
// This package provides functions to build the host-to-device payloads and to
// interpret the fixed-size response windows the device sends back. It does not
// perform any I/O: the harness package drives a transport with the values
// produced here.
//
// # Protocol Overview
//
// The exchange has no framing bytes, length fields or checksums. Both ends
// agree on a fixed sequence of writes and reads:
//
//	host   -> device : [COUNT(1)]
//	device -> host   : [COUNT_ECHO(1)]
//	host   -> device : [KEY(16)]
//	device -> host   : [SUBKEY(16)]
//	for each block:
//	  host   -> device : [CIPHERTEXT(16)]
//	  device -> host   : [CIPHERTEXT_ECHO(16)]
//	device -> host   : [DECRYPTED(16)] x COUNT
//	device -> host   : [DIGEST(16)]
//	device -> host   : [DEBUG_FIFO(112)]
//
// The serial line is configured for odd parity, two stop bits and eight data
// bits.
//
// # Schedule
//
// Schedule expands the sequence above for a given block count so that the
// expected writes and reads can be inspected without a transport:
//
//	steps, err := protocol.Schedule(2)
//	writes, reads := protocol.Totals(steps) // 49, 209
//
// # Builders and Parsers
//
//	cmd, err := protocol.BuildBlockCountCmd(len(blocks))
//	cmd, err := protocol.BuildKeyCmd(key)
//	frames, err := protocol.ParseWindow(protocol.FrameSubkey, protocol.NoBlock, data)
//
// Every received byte is returned as a Frame tagged with its kind, phase,
// block and index within the window.
package protocol
