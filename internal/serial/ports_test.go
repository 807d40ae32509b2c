package serial

import "testing"

func TestPortInfoLabel(t *testing.T) {
	plain := PortInfo{Name: "/dev/ttyS0"}
	if plain.Label() != "/dev/ttyS0" {
		t.Errorf("unexpected label: %s", plain.Label())
	}

	usb := PortInfo{Name: "/dev/ttyACM0", IsUSB: true, VID: "26ac", PID: "0011"}
	if usb.Label() != "/dev/ttyACM0  [USB 26ac:0011]" {
		t.Errorf("unexpected label: %s", usb.Label())
	}

	withSerial := PortInfo{Name: "COM3", IsUSB: true, VID: "26ac", PID: "0011", SerialNumber: "A1B2C3"}
	if withSerial.Label() != "COM3  [USB 26ac:0011 A1B2C3]" {
		t.Errorf("unexpected label: %s", withSerial.Label())
	}
}
