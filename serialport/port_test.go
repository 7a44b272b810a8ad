package serialport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// fakePort implements the serial.Port methods used by Port.
type fakePort struct {
	serial.Port

	input    []byte
	written  []byte
	timeout  time.Duration
	resets   int
	closes   int
	resetErr error
}

func (f *fakePort) Read(p []byte) (int, error) {
	n := copy(p, f.input)
	f.input = f.input[n:]
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakePort) ResetInputBuffer() error {
	f.resets++
	if f.resetErr != nil {
		return f.resetErr
	}
	f.input = nil
	return nil
}

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return nil
}

func (f *fakePort) Close() error {
	f.closes++
	return nil
}

func stubOpen(t *testing.T, fp *fakePort, openErr error) (gotName *string, gotMode **serial.Mode) {
	t.Helper()
	var name string
	var mode *serial.Mode
	orig := openFunc
	openFunc = func(n string, m *serial.Mode) (serial.Port, error) {
		name, mode = n, m
		if openErr != nil {
			return nil, openErr
		}
		return fp, nil
	}
	t.Cleanup(func() { openFunc = orig })
	return &name, &mode
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "valid", cfg: Config{Name: "/dev/ttyUSB1", BaudRate: 115200}},
		{name: "missing name", cfg: Config{BaudRate: 9600}, wantErr: ErrNoPortName},
		{name: "zero baud", cfg: Config{Name: "COM3"}, wantErr: ErrInvalidBaudRate},
		{name: "negative baud", cfg: Config{Name: "COM3", BaudRate: -1}, wantErr: ErrInvalidBaudRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigMode(t *testing.T) {
	mode := Config{Name: "/dev/ttyUSB1", BaudRate: 115200}.Mode()

	assert.Equal(t, 115200, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, serial.OddParity, mode.Parity)
	assert.Equal(t, serial.TwoStopBits, mode.StopBits)
}

func TestOpen(t *testing.T) {
	fp := &fakePort{input: []byte{0xAA, 0xBB}}
	name, mode := stubOpen(t, fp, nil)

	port, err := Open(Config{Name: "/dev/ttyUSB1", BaudRate: 9600, ReadTimeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB1", *name)
	assert.Equal(t, 9600, (*mode).BaudRate)
	assert.Equal(t, time.Second, fp.timeout)
	assert.Equal(t, 1, fp.resets)
	assert.Empty(t, fp.input)
	assert.Equal(t, "/dev/ttyUSB1", port.Name())
}

func TestOpenErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := Open(Config{BaudRate: 9600})
		assert.ErrorIs(t, err, ErrNoPortName)
	})

	t.Run("open fails", func(t *testing.T) {
		cause := errors.New("no such file or directory")
		stubOpen(t, nil, cause)

		_, err := Open(Config{Name: "/dev/ttyUSB9", BaudRate: 9600})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "/dev/ttyUSB9")
	})

	t.Run("reset fails closes port", func(t *testing.T) {
		fp := &fakePort{resetErr: errors.New("io error")}
		stubOpen(t, fp, nil)

		_, err := Open(Config{Name: "/dev/ttyUSB1", BaudRate: 9600})
		require.Error(t, err)
		assert.Equal(t, 1, fp.closes)
	})
}

func TestPortIO(t *testing.T) {
	fp := &fakePort{}
	stubOpen(t, fp, nil)

	port, err := Open(Config{Name: "/dev/ttyUSB1", BaudRate: 9600})
	require.NoError(t, err)

	n, err := port.Write([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x02}, fp.written)

	fp.input = []byte{0x03}
	buf := make([]byte, 4)
	n, err = port.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x03), buf[0])

	require.NoError(t, port.SetReadTimeout(50*time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, fp.timeout)
}

func TestPortCloseIdempotent(t *testing.T) {
	fp := &fakePort{}
	stubOpen(t, fp, nil)

	port, err := Open(Config{Name: "/dev/ttyUSB1", BaudRate: 9600})
	require.NoError(t, err)

	require.NoError(t, port.Close())
	require.NoError(t, port.Close())
	assert.Equal(t, 1, fp.closes)

	_, err = port.Write([]byte{0x00})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = port.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, port.ResetInputBuffer(), ErrClosed)
}

func TestList(t *testing.T) {
	origDetailed, origPlain := detailedList, plainList
	t.Cleanup(func() { detailedList, plainList = origDetailed, origPlain })

	t.Run("detailed", func(t *testing.T) {
		detailedList = func() ([]*enumerator.PortDetails, error) {
			return []*enumerator.PortDetails{
				{Name: "/dev/ttyUSB1", IsUSB: true, VID: "0403", PID: "6010", SerialNumber: "FT1234"},
			}, nil
		}

		ports, err := List()
		require.NoError(t, err)
		require.Len(t, ports, 1)
		assert.Equal(t, PortInfo{Name: "/dev/ttyUSB1", IsUSB: true, VID: "0403", PID: "6010", SerialNumber: "FT1234"}, ports[0])
	})

	t.Run("fallback to names", func(t *testing.T) {
		detailedList = func() ([]*enumerator.PortDetails, error) {
			return nil, errors.New("enumeration not supported")
		}
		plainList = func() ([]string, error) {
			return []string{"/dev/ttyS0", "/dev/ttyS1"}, nil
		}

		ports, err := List()
		require.NoError(t, err)
		assert.Equal(t, []PortInfo{{Name: "/dev/ttyS0"}, {Name: "/dev/ttyS1"}}, ports)
	})
}
