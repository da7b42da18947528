package caenhv_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/fhuwer/caenhv"
)

func setRx(c Cmd, s string) {
	rx := c.RxBytes()
	*rx = append((*rx)[:0], s...)
}

var _ = Describe("MonCmd", func() {
	Describe("encoding", func() {
		It("builds a module level read", func() {
			c := NewMonCmd(0, NoCh, "BDNAME", Raw)
			Expect(string(c.TxBytes())).To(Equal(
				"$BD:0,CMD:MON,PAR:BDNAME\r\n"))
			Expect(c.Tx()).To(Equal("$BD:0,CMD:MON,PAR:BDNAME"))
			Expect(c.Module()).To(Equal(0))
			Expect(c.Ch()).To(Equal(NoCh))
			Expect(c.Par()).To(Equal("BDNAME"))
		})

		It("builds a channel read", func() {
			c := NewMonCmd(12, 3, "VSET", Num)
			Expect(string(c.TxBytes())).To(Equal(
				"$BD:12,CMD:MON,CH:3,PAR:VSET\r\n"))
		})

		It("round trips every module and channel", func() {
			for m := 0; m <= 99; m++ {
				for ch := 0; ch <= 3; ch++ {
					c := NewMonCmd(m, ch, "VMON", Num)
					Expect(string(c.TxBytes())).To(Equal(fmt.Sprintf(
						"$BD:%d,CMD:MON,CH:%d,PAR:VMON\r\n", m, ch)))
				}
			}
		})

		It("can't use a negative module", func() {
			Expect(func() {
				NewMonCmd(-1, NoCh, "BDNAME", Raw)
			}).Should(PanicWith("invalid module: -1"))
		})

		It("can't use a module beyond 99", func() {
			Expect(func() {
				NewMonCmd(100, NoCh, "BDNAME", Raw)
			}).Should(PanicWith("invalid module: 100"))
		})

		It("can't use a negative channel", func() {
			Expect(func() {
				NewMonCmd(0, -2, "VSET", Num)
			}).Should(PanicWith("invalid channel: -2"))
		})

		It("can't use an empty par", func() {
			Expect(func() {
				NewMonCmd(0, 0, "", Raw)
			}).Should(PanicWith("empty par"))
		})
	})

	Describe("decoding", func() {
		decode := func(s string, kind Kind) *MonCmd {
			c := NewMonCmd(2, 0, "VSET", kind)
			setRx(c, s)
			return c
		}

		It("parses a numeric payload", func() {
			c := decode("#BD:02,CMD:OK,VAL:123.4\r\n", Num)
			Expect(c.Err()).To(Succeed())
			Expect(c.HasVal()).To(BeTrue())
			Expect(c.Float()).To(Equal(123.4))
		})

		It("rejects a numeric payload read as integer", func() {
			c := decode("#BD:02,CMD:OK,VAL:123.4\r\n", Int)
			Expect(c.Err()).To(MatchError(
				`invalid reply: [#BD:02,CMD:OK,VAL:123.4\r\n]`))
			Expect(c.HasVal()).To(BeFalse())
		})

		It("parses an integer payload", func() {
			c := decode("#BD:02,CMD:OK,VAL:136\r\n", Int)
			Expect(c.Err()).To(Succeed())
			Expect(c.Int()).To(Equal(136))
		})

		It("returns the raw payload without a kind", func() {
			c := decode("#BD:02,CMD:OK,VAL:N1471\r\n", Raw)
			Expect(c.Err()).To(Succeed())
			Expect(c.Str()).To(Equal("N1471"))
		})

		It("keeps separators inside the payload", func() {
			c := decode("#BD:02,CMD:OK,VAL:1.0;2.0;3.0;4.0\r\n", Raw)
			Expect(c.Err()).To(Succeed())
			Expect(c.Str()).To(Equal("1.0;2.0;3.0;4.0"))
		})

		It("treats a missing VAL as no value", func() {
			c := decode("#BD:02,CMD:OK\r\n", Num)
			Expect(c.Err()).To(Succeed())
			Expect(c.HasVal()).To(BeFalse())
		})

		It("treats an empty read as no value", func() {
			c := decode("", Num)
			Expect(c.Err()).To(Succeed())
			Expect(c.HasVal()).To(BeFalse())
		})

		It("trims leading whitespace", func() {
			c := decode("  #BD:02,CMD:OK,VAL:7\r\n", Int)
			Expect(c.Err()).To(Succeed())
			Expect(c.Int()).To(Equal(7))
		})

		It("requires the CRLF terminator", func() {
			c := decode("#BD:02,CMD:OK,VAL:7", Int)
			Expect(c.Err()).To(Succeed())
			Expect(c.HasVal()).To(BeFalse())
		})

		It("requires the two digit id on success", func() {
			c := decode("#BD:2,CMD:OK,VAL:7\r\n", Int)
			Expect(c.Err()).To(Succeed())
			Expect(c.HasVal()).To(BeFalse())
		})

		DescribeTable("error frames",
			func(s string, e error) {
				c := decode(s, Raw)
				Expect(c.Err()).To(MatchError(e))
				Expect(c.HasVal()).To(BeFalse())
			},
			Entry(nil, "#BD:02,CMD:ERR\r\n", UnknownCommand),
			Entry(nil, "#BD:7,CMD:ERR\r\n", UnknownCommand),
			Entry(nil, "#BD:99,CMD:ERR\r\n", UnknownCommand),
			Entry(nil, "#BD:02,CH:ERR\r\n", ChannelError),
			Entry(nil, "#BD:02,PAR:ERR\r\n", ParameterError),
			Entry(nil, "#BD:02,VAL:ERR\r\n", ValueError),
			Entry(nil, "#BD:02,LOC:ERR\r\n", PermissionDenied),
		)

		It("pretty prints the exchange", func() {
			c := decode("#BD:02,CMD:OK,VAL:123.4\r\n", Num)
			Expect(c.Rx()).To(Equal(`#BD:02,CMD:OK,VAL:123.4\r\n`))
			Expect(c.String()).To(Equal(
				"$BD:2,CMD:MON,CH:0,PAR:VSET\n" +
					`#BD:02,CMD:OK,VAL:123.4\r\n`))
		})
	})
})

var _ = Describe("SetCmd", func() {
	It("builds a bare set", func() {
		c := NewSetCmd(0, 1, "ON")
		Expect(string(c.TxBytes())).To(Equal(
			"$BD:0,CMD:SET,CH:1,PAR:ON\r\n"))
	})

	It("builds a module level set", func() {
		c := NewSetCmd(0, NoCh, "BDCLR")
		Expect(string(c.TxBytes())).To(Equal(
			"$BD:0,CMD:SET,PAR:BDCLR\r\n"))
	})

	It("builds a token value set", func() {
		c := NewSetValCmd(0, 2, "IMRANGE", "LOW")
		Expect(string(c.TxBytes())).To(Equal(
			"$BD:0,CMD:SET,CH:2,PAR:IMRANGE,VAL:LOW\r\n"))
	})

	It("formats fixed point values with one decimal", func() {
		c := NewSetNumCmd(0, 0, "VSET", 1500)
		Expect(string(c.TxBytes())).To(Equal(
			"$BD:0,CMD:SET,CH:0,PAR:VSET,VAL:1500.0\r\n"))
		c = NewSetNumCmd(0, 0, "VSET", 12.34)
		Expect(string(c.TxBytes())).To(Equal(
			"$BD:0,CMD:SET,CH:0,PAR:VSET,VAL:12.3\r\n"))
	})

	It("can't use an empty val", func() {
		Expect(func() {
			NewSetValCmd(0, 0, "VSET", "")
		}).Should(PanicWith("empty val"))
	})

	It("propagates a rejected value", func() {
		c := NewSetValCmd(0, 0, "VSET", "99999.9")
		setRx(c, "#BD:00,VAL:ERR\r\n")
		Expect(c.Err()).To(MatchError(ValueError))
	})

	It("propagates local control lockout", func() {
		c := NewSetValCmd(0, 0, "VSET", "100.0")
		setRx(c, "#BD:00,LOC:ERR\r\n")
		Expect(c.Err()).To(MatchError(PermissionDenied))
	})

	It("accepts a reply with no payload", func() {
		c := NewSetCmd(0, 0, "ON")
		setRx(c, "#BD:00,CMD:OK\r\n")
		Expect(c.Err()).To(Succeed())
	})
})
