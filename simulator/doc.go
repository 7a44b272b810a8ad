// Package simulator models the hardware side of the UART test protocol.
//
// A Device is an in-memory io.ReadWriter that behaves like the AES design
// behind the serial link: it echoes the block count, reports the last round
// key after the key exchange, echoes and decrypts every ciphertext block,
// and finally emits the decrypted blocks, an encrypted SHAKE128 digest of the
// plaintext and a debug FIFO dump.
//
//	dev := simulator.New()
//	drv := harness.New(dev, harness.WithSettleDelay(0))
//	report, err := drv.Run(ctx, blocks)
//
// Reads with no pending output return 0 bytes and no error, the same as a
// serial port whose read timeout expired. Faults can be injected with
// options to exercise the driver's error paths.
package simulator
