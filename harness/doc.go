// Package harness drives a test session against the AES design over a byte
// transport.
//
// # Overview
//
// This package runs the complete, fixed exchange with the design:
//   - Sending the block count and checking its echo
//   - Sending the AES key and draining the 16 subkey bytes
//   - Encrypting every vector block and sending the ciphertext, draining its echo
//   - Draining the decrypted blocks, the digest and the debug FIFO
//
// # Basic Usage
//
//	// User provides the transport (io.ReadWriter), e.g. serialport.Open
//	port, err := serialport.Open(serialport.Config{Name: "/dev/ttyUSB1", BaudRate: 115200})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	blocks, err := vectors.Parse("DUMMY_ENCRYPTED_DATA.mem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	drv := harness.New(port)
//	report, err := drv.Run(context.Background(), blocks)
//
// # Configuration Options
//
//	drv := harness.New(port,
//	    harness.WithKey(key),
//	    harness.WithReadTimeout(2*time.Second),
//	    harness.WithSettleDelay(200*time.Millisecond),
//	    harness.WithStrictEcho(true),
//	    harness.WithLogger(myLogger),
//	    harness.WithProgressCallback(progressFunc),
//	    harness.WithFrameCallback(frameFunc),
//	)
//
// # Timeouts
//
// Every response window is bounded by the read timeout. Transports that
// implement SetReadTimeout (go.bug.st/serial) or SetReadDeadline (net.Conn,
// os.File) are configured accordingly; a read that returns no data, or a
// deadline error, ends the window with an IncompleteResponseError instead of
// blocking forever.
//
// # Error Handling
//
// The package provides structured error types:
//   - TransportError: a write or read on the transport failed (ErrTransportUnavailable)
//   - IncompleteResponseError: a window ended short (ErrResponseTimeout on timeout)
//   - EchoMismatchError: the count or ciphertext echo differs from what was sent
//   - protocol.BlockCountError: more than 255 blocks
//
// # Hardware Independence
//
// The driver never opens or closes the transport. Any io.ReadWriter works:
// a serial port, a TCP bridge, or the simulator package for tests.
package harness
