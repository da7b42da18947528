package caenhv

import "time"

// Reading is one periodic sample of a channel.
type Reading struct {
	Ch      int
	Voltage float64
	Current float64
	Status  ChannelStatus
}

// Poller samples every channel of a Device on a fixed interval and
// delivers the readings on the channel returned by Run. It shares the
// Device's Controller with any foreground caller, so samples and
// direct exchanges interleave but never overlap on the wire.
type Poller struct {
	Device *Device
	Every  time.Duration
}

// Run starts the background sampler. The returned channel closes once
// stop closes. Failed exchanges are logged and the channel skipped
// for that round.
func (p *Poller) Run(stop <-chan struct{}) <-chan Reading {
	if p.Device == nil {
		panic("empty Poller.Device")
	}
	if p.Every <= 0 {
		p.Every = time.Second
	}
	out := make(chan Reading)
	go p.run(stop, out)
	return out
}

func (p *Poller) run(stop <-chan struct{}, out chan<- Reading) {
	defer logPanic()
	defer close(out)

	t := time.NewTicker(p.Every)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}
		for i := 0; i < p.Device.Channels(); i++ {
			r, err := sample(p.Device.Channel(i))
			if err != nil {
				errorLog("poll ch %d: %s", i, err)
				continue
			}
			select {
			case out <- r:
			case <-stop:
				return
			}
		}
	}
}

func sample(c *Channel) (Reading, error) {
	r := Reading{Ch: c.Index()}
	var err error
	if r.Voltage, err = c.MeasuredVoltage(); err != nil {
		return r, err
	}
	if r.Current, err = c.MeasuredCurrent(); err != nil {
		return r, err
	}
	s, err := c.Status()
	if err != nil {
		return r, err
	}
	r.Status = s
	return r, nil
}
