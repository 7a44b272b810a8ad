package serialport

import (
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortInfo describes a serial port found on the system.
type PortInfo struct {
	Name         string `json:"name"`
	IsUSB        bool   `json:"is_usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Product      string `json:"product,omitempty"`
}

var (
	detailedList = enumerator.GetDetailedPortsList
	plainList    = serial.GetPortsList
)

// List returns the serial ports on the system. USB details are filled in when
// the platform enumerator supports them; otherwise only names are returned.
func List() ([]PortInfo, error) {
	details, err := detailedList()
	if err == nil {
		ports := make([]PortInfo, 0, len(details))
		for _, d := range details {
			ports = append(ports, PortInfo{
				Name:         d.Name,
				IsUSB:        d.IsUSB,
				VID:          d.VID,
				PID:          d.PID,
				SerialNumber: d.SerialNumber,
				Product:      d.Product,
			})
		}
		return ports, nil
	}

	names, err := plainList()
	if err != nil {
		return nil, err
	}
	ports := make([]PortInfo, 0, len(names))
	for _, n := range names {
		ports = append(ports, PortInfo{Name: n})
	}
	return ports, nil
}
