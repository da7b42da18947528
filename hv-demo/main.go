package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/fhuwer/caenhv"
)

func main() {
	port := flag.String("p", "/dev/ttyUSB0", "serial port of the module")
	baud := flag.Int("b", caenhv.BAUD, "baud rate")
	module := flag.Int("m", 0, "module id")
	verbose := flag.Bool("v", false, "log every exchange")
	flag.Parse()

	log := logrus.New()
	caenhv.ErrorLogFunc = log.Errorf
	caenhv.InfoLogFunc = log.Infof
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
		caenhv.DebugLogFunc = log.Debugf
	}

	dev, err := caenhv.NewDevice(
		&caenhv.Opener{Port: *port, Baud: *baud}, *module, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	if name, err := dev.Name(); err == nil {
		log.Infof("connected to %s", name)
	}

	stop := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		close(stop)
	}()

	poller := &caenhv.Poller{Device: dev}
	for r := range poller.Run(stop) {
		fmt.Printf("ch %d: %8.2f V %8.3f uA  %s\n",
			r.Ch, r.Voltage, r.Current, r.Status)
	}
}
