package caenhv

import "strconv"

// ChannelStatus is the single most significant condition reported by
// the STAT bitmask.
type ChannelStatus byte

const (
	Off ChannelStatus = iota
	On
	RampingUp
	RampingDown
	OverCurrent
	OverVoltage
	UnderVoltage
	MaxVoltage
	Tripped
	OverPowered
	OverTemperature
	Disabled
	Killed
	Interlocked
	NoCalibration
)

var statusNames = [...]string{
	"OFF",
	"ON",
	"RAMP UP",
	"RAMP DOWN",
	"OVER CURRENT",
	"OVER VOLTAGE",
	"UNDER VOLTAGE",
	"MAX VOLTAGE",
	"TRIP",
	"OVER POWER",
	"OVER TEMPERATURE",
	"DISABLED",
	"KILL",
	"INTERLOCK",
	"NO CALIBRATION",
}

func (s ChannelStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "STATUS " + strconv.Itoa(int(s))
}

// Enabled reports whether the channel is powered: fully on or still
// ramping up. Every fault state, TRIP and INTERLOCK included, counts
// as not enabled.
func (s ChannelStatus) Enabled() bool {
	return s == On || s == RampingUp
}

// DecodeStatus maps the STAT bitmask to the most significant set
// condition, scanning from NoCalibration down. The hardware can flag
// several conditions at once; only the highest one is surfaced, and a
// zero mask is Off.
func DecodeStatus(mask int) ChannelStatus {
	for s := NoCalibration; s > Off; s-- {
		if mask&(1<<(s-1)) != 0 {
			return s
		}
	}
	return Off
}

// AlarmStatus is the BDALARM bitmask. Unlike ChannelStatus it is a
// true flag set: several alarms can be active at once, and callers
// test individual bits.
type AlarmStatus int

const (
	NoAlarm     AlarmStatus = 0
	Ch0Alarm    AlarmStatus = 1 << 0
	Ch1Alarm    AlarmStatus = 1 << 1
	Ch2Alarm    AlarmStatus = 1 << 2
	Ch3Alarm    AlarmStatus = 1 << 3
	PowerFail   AlarmStatus = 1 << 4
	OverPower   AlarmStatus = 1 << 5
	HVClockFail AlarmStatus = 1 << 6
)

var alarmNames = [...]string{
	"CH0",
	"CH1",
	"CH2",
	"CH3",
	"PW FAIL",
	"OVER POWER",
	"HV CLOCK FAIL",
}

func (a AlarmStatus) String() string {
	if a == NoAlarm {
		return "NO ALARM"
	}
	var b []byte
	for i, n := range alarmNames {
		if a&(1<<i) != 0 {
			if len(b) > 0 {
				b = append(b, '|')
			}
			b = append(b, n...)
		}
	}
	if len(b) == 0 {
		return "ALARM " + strconv.Itoa(int(a))
	}
	return string(b)
}

// MonRange selects the current monitoring range.
type MonRange byte

const (
	Low MonRange = iota
	High
)

func (r MonRange) String() string {
	if r == High {
		return "HIGH"
	}
	return "LOW"
}

func parseMonRange(s string) (MonRange, bool) {
	switch s {
	case "LOW":
		return Low, true
	case "HIGH":
		return High, true
	}
	return 0, false
}
