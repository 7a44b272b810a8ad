// Package serialport opens the UART link to the design.
//
// The design expects eight data bits, odd parity and two stop bits. Only the
// device name and baud rate are configurable:
//
//	port, err := serialport.Open(serialport.Config{
//	    Name:        "/dev/ttyUSB1",
//	    BaudRate:    115200,
//	    ReadTimeout: 2 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
// A *Port is an io.ReadWriteCloser and also exposes ResetInputBuffer and
// SetReadTimeout, which the harness driver uses when present.
package serialport
