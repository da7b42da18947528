// Package caenhv drives a CAEN DT1471ET/N1471 high voltage module
// attached over its USB serial line.
//
// The module speaks a line oriented ASCII protocol: every exchange is
// one request line and one reply line over a half duplex link. The
// package serializes exchanges on a shared Controller, encodes
// requests, and decodes replies into typed values or one of a small
// closed set of errors.
//
// Typical use:
//
//	dev, err := caenhv.NewDevice(&caenhv.Opener{Port: "/dev/ttyUSB0"}, 0, 0)
//	if err != nil {
//		...
//	}
//	defer dev.Close()
//	v, err := dev.Channel(0).MeasuredVoltage()
package caenhv
