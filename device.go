package caenhv

import (
	"fmt"
	"strconv"
)

// Channels is the channel count of the DT1471ET/N1471 family.
const Channels = 4

// Device is the facade over one HV module. It exclusively owns the
// transport from construction to Close; every getter reflects a fresh
// exchange, nothing is cached.
type Device struct {
	ctl    *Controller
	module int
	chans  []Channel
}

// NewDevice opens the port and builds the facade. channels <= 0 gets
// the family default.
func NewDevice(o ConnOpener, module, channels int) (*Device, error) {
	if module < 0 || module > 99 {
		panic(fmt.Sprintf("invalid module: %d", module))
	}
	if channels <= 0 {
		channels = Channels
	}
	d := &Device{
		ctl:    &Controller{Opener: o},
		module: module,
		chans:  make([]Channel, channels),
	}
	for i := range d.chans {
		d.chans[i] = Channel{dev: d, ch: i}
	}
	if err := d.ctl.Connect(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) Module() int {
	return d.module
}

func (d *Device) Channels() int {
	return len(d.chans)
}

func (d *Device) Channel(i int) *Channel {
	if i < 0 || i >= len(d.chans) {
		panic(fmt.Sprintf("invalid channel: %d", i))
	}
	return &d.chans[i]
}

func (d *Device) Close() {
	d.ctl.Close()
}

func (d *Device) IsConnected() bool {
	return d.ctl.IsConnected()
}

//----------------------------------------------------------------------

func (d *Device) monStr(ch int, par string) (string, error) {
	c := NewMonCmd(d.module, ch, par, Raw)
	if err := d.ctl.Send(c); err != nil {
		return "", err
	}
	if !c.HasVal() {
		return "", InvalidReplyErr(*c.RxBytes())
	}
	return c.Str(), nil
}

func (d *Device) monFloat(ch int, par string) (float64, error) {
	c := NewMonCmd(d.module, ch, par, Num)
	if err := d.ctl.Send(c); err != nil {
		return 0, err
	}
	if !c.HasVal() {
		return 0, InvalidReplyErr(*c.RxBytes())
	}
	return c.Float(), nil
}

func (d *Device) monInt(ch int, par string) (int, error) {
	c := NewMonCmd(d.module, ch, par, Int)
	if err := d.ctl.Send(c); err != nil {
		return 0, err
	}
	if !c.HasVal() {
		return 0, InvalidReplyErr(*c.RxBytes())
	}
	return c.Int(), nil
}

func (d *Device) set(ch int, par string) error {
	return d.ctl.Send(NewSetCmd(d.module, ch, par))
}

func (d *Device) setVal(ch int, par, val string) error {
	return d.ctl.Send(NewSetValCmd(d.module, ch, par, val))
}

func (d *Device) setNum(ch int, par string, v float64) error {
	return d.ctl.Send(NewSetNumCmd(d.module, ch, par, v))
}

//----------------------------------------------------------------------

// Name reads the board name, e.g. "N1471".
func (d *Device) Name() (string, error) {
	return d.monStr(NoCh, "BDNAME")
}

// FirmwareRelease reads the installed firmware release.
func (d *Device) FirmwareRelease() (string, error) {
	return d.monStr(NoCh, "BDFREL")
}

// SerialNumber reads the board serial number.
func (d *Device) SerialNumber() (string, error) {
	return d.monStr(NoCh, "BDSNUM")
}

// InterlockStatus reads the interlock state, "YES" or "NO".
func (d *Device) InterlockStatus() (string, error) {
	return d.monStr(NoCh, "BDILK")
}

// InterlockMode reads the interlock mode, "OPEN" or "CLOSED".
func (d *Device) InterlockMode() (string, error) {
	return d.monStr(NoCh, "BDILKM")
}

func (d *Device) SetInterlockMode(mode string) error {
	return d.setVal(NoCh, "BDILKM", mode)
}

// ControlMode reads "REMOTE" or "LOCAL". It can only be changed on
// the front panel; writes while local are refused with Local Control.
func (d *Device) ControlMode() (string, error) {
	return d.monStr(NoCh, "BDCTR")
}

// BusTermination reports whether the local bus termination is on.
func (d *Device) BusTermination() (bool, error) {
	s, err := d.monStr(NoCh, "BDTERM")
	if err != nil {
		return false, err
	}
	return s == "ON", nil
}

func (d *Device) AlarmStatus() (AlarmStatus, error) {
	n, err := d.monInt(NoCh, "BDALARM")
	if err != nil {
		return 0, err
	}
	return AlarmStatus(n), nil
}

func (d *Device) ClearAlarm() error {
	return d.set(NoCh, "BDCLR")
}

//----------------------------------------------------------------------

// Channel is one HV output of the module. Channels are built once by
// NewDevice and live exactly as long as the Device; they hold only a
// back reference for running exchanges.
type Channel struct {
	dev *Device
	ch  int
}

func (c *Channel) Index() int {
	return c.ch
}

// Voltage reads the target voltage.
func (c *Channel) Voltage() (float64, error) {
	return c.dev.monFloat(c.ch, "VSET")
}

func (c *Channel) SetVoltage(v float64) error {
	return c.dev.setNum(c.ch, "VSET", v)
}

// MeasuredVoltage reads the voltage actually present on the output.
func (c *Channel) MeasuredVoltage() (float64, error) {
	return c.dev.monFloat(c.ch, "VMON")
}

// MeasuredCurrent reads the output current in uA.
func (c *Channel) MeasuredCurrent() (float64, error) {
	return c.dev.monFloat(c.ch, "IMON")
}

// CurrentLimit reads the current limit in uA.
func (c *Channel) CurrentLimit() (float64, error) {
	return c.dev.monFloat(c.ch, "ISET")
}

func (c *Channel) SetCurrentLimit(v float64) error {
	return c.dev.setNum(c.ch, "ISET", v)
}

func (c *Channel) MonRange() (MonRange, error) {
	s, err := c.dev.monStr(c.ch, "IMRANGE")
	if err != nil {
		return 0, err
	}
	r, ok := parseMonRange(s)
	if !ok {
		return 0, InvalidReplyErr(s)
	}
	return r, nil
}

func (c *Channel) SetMonRange(r MonRange) error {
	return c.dev.setVal(c.ch, "IMRANGE", r.String())
}

func (c *Channel) Status() (ChannelStatus, error) {
	n, err := c.dev.monInt(c.ch, "STAT")
	if err != nil {
		return 0, err
	}
	return DecodeStatus(n), nil
}

// Enabled reports whether the channel is on or ramping up.
func (c *Channel) Enabled() (bool, error) {
	s, err := c.Status()
	if err != nil {
		return false, err
	}
	return s.Enabled(), nil
}

func (c *Channel) SetEnabled(on bool) error {
	if on {
		return c.dev.set(c.ch, "ON")
	}
	return c.dev.set(c.ch, "OFF")
}

// TripTime reads the seconds the channel may sit over its current
// limit before tripping.
func (c *Channel) TripTime() (float64, error) {
	return c.dev.monFloat(c.ch, "TRIP")
}

func (c *Channel) SetTripTime(sec float64) error {
	return c.dev.setVal(c.ch, "TRIP",
		strconv.FormatFloat(sec, 'g', -1, 64))
}

// VoltageLimit reads the software voltage limit.
func (c *Channel) VoltageLimit() (float64, error) {
	return c.dev.monFloat(c.ch, "MAXV")
}

func (c *Channel) SetVoltageLimit(v float64) error {
	return c.dev.setNum(c.ch, "MAXV", v)
}

// RampUpRate reads the ramp up rate in V/s.
func (c *Channel) RampUpRate() (float64, error) {
	return c.dev.monFloat(c.ch, "RUP")
}

func (c *Channel) SetRampUpRate(v float64) error {
	return c.dev.setNum(c.ch, "RUP", v)
}

// RampDownRate reads the ramp down rate in V/s.
func (c *Channel) RampDownRate() (float64, error) {
	return c.dev.monFloat(c.ch, "RDW")
}

func (c *Channel) SetRampDownRate(v float64) error {
	return c.dev.setNum(c.ch, "RDW", v)
}

// PowerDownMode reads how the channel comes down on a trip, "RAMP" or
// "KILL".
func (c *Channel) PowerDownMode() (string, error) {
	return c.dev.monStr(c.ch, "PDWN")
}

func (c *Channel) SetPowerDownMode(mode string) error {
	return c.dev.setVal(c.ch, "PDWN", mode)
}

// Polarity reads the output polarity as +1 or -1.
func (c *Channel) Polarity() (int, error) {
	s, err := c.dev.monStr(c.ch, "POL")
	if err != nil {
		return 0, err
	}
	switch s {
	case "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	return 0, InvalidReplyErr(s)
}
