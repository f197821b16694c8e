package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"embedkit/pkg/checksum"
	"embedkit/pkg/filter"
	"embedkit/pkg/kitconfig"
	"embedkit/pkg/numfmt"
	"embedkit/pkg/repl"
	"embedkit/pkg/ringbuf"
	"embedkit/pkg/scale"
	"embedkit/pkg/swtimer"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// monitor owns one of everything the kit provides, driven from the repl.
type monitor struct {
	rb        *ringbuf.RingBuffer
	tm        *swtimer.Timer
	filters   []filter.Filter
	filterIDs []string
	lut       *scale.Table

	overflows int // callback count since start
}

func main() {
	// 0. read the scenario file from the command line
	arg := flag.String("config", "", "specify the scenario file")
	flag.Parse()
	if *arg == "" {
		fmt.Println("usage: bufmon --config <scenario file>")
		return
	}

	config, err := kitconfig.ParseConfig(*arg)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 1. assemble the kit from the config
	m, err := newMonitor(config)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 2. run the repl
	bufmonRepl(m).Run()
}

func newMonitor(config *kitconfig.KitConfig) (*monitor, error) {
	m := &monitor{}

	rb, err := ringbuf.NewOverwrite(make([]byte, config.BufferCapacity), config.Overwrite)
	if err != nil {
		return nil, err
	}
	rb.SetOverflowCallback(func() {
		m.overflows++
		logger.Warn("buffer overflow", "count", rb.Count(), "overflows", m.overflows)
	})
	m.rb = rb

	if config.TimerInterval > 0 {
		tm, err := swtimer.New(config.TimerInterval, config.TimerPeriodic)
		if err != nil {
			return nil, err
		}
		tm.SetCallback(func(ctx any) {
			mon := ctx.(*monitor)
			logger.Info("timer expired", "buffered", mon.rb.Count(), "capacity", mon.rb.Capacity())
		}, m)
		tm.Start()
		m.tm = tm
	}

	for _, fc := range config.Filters {
		switch fc.Kind {
		case kitconfig.FilterAvg:
			f, err := filter.NewMovingAverage(make([]int32, fc.Window))
			if err != nil {
				return nil, err
			}
			m.filters = append(m.filters, f)
			m.filterIDs = append(m.filterIDs, fmt.Sprintf("avg%d", fc.Window))
		case kitconfig.FilterExp:
			f, err := filter.NewExponential(fc.AlphaNum, fc.AlphaDen)
			if err != nil {
				return nil, err
			}
			m.filters = append(m.filters, f)
			m.filterIDs = append(m.filterIDs, fmt.Sprintf("exp%d/%d", fc.AlphaNum, fc.AlphaDen))
		}
	}

	if len(config.LutX) > 0 {
		lut, err := scale.NewTable(config.LutX, config.LutY)
		if err != nil {
			return nil, err
		}
		m.lut = lut
	}

	return m, nil
}

func bufmonRepl(m *monitor) *repl.REPL {
	r := repl.NewRepl()
	r.AddCommand("write", m.writeHandler(), "write <text> - push each byte of <text> into the buffer")
	r.AddCommand("read", m.readHandler(), "read [n] - pop up to n bytes (default 1)")
	r.AddCommand("stats", m.statsHandler(), "stats - buffer and timer state")
	r.AddCommand("overflow", m.overflowHandler(), "overflow - query and clear the overflow flag")
	r.AddCommand("tick", m.tickHandler(), "tick [n] - advance the timer n ticks (default 1)")
	r.AddCommand("sample", m.sampleHandler(), "sample <v> - run a sample through the filters and lut")
	r.AddCommand("fmt", m.fmtHandler(), "fmt <v> [decimals] - format a number the firmware way")
	r.AddCommand("sum", m.sumHandler(), "sum <text> - checksums of <text>")
	return r
}

func (m *monitor) writeHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)[1:]
		if len(args) != 1 {
			return fmt.Errorf("usage: write <text>")
		}
		before := m.overflows
		for _, b := range []byte(args[0]) {
			m.rb.Write(b)
		}
		dropped := m.overflows - before
		fmt.Fprintf(config.Writer, "buffered %d/%d, dropped %d\n",
			m.rb.Count(), m.rb.Capacity(), dropped)
		return nil
	}
}

func (m *monitor) readHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)[1:]
		n := 1
		if len(args) == 1 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
				return fmt.Errorf("usage: read [n]")
			}
		} else if len(args) > 1 {
			return fmt.Errorf("usage: read [n]")
		}

		out := make([]byte, 0, n)
		for i := 0; i < n && m.rb.IsNotEmpty(); i++ {
			b, err := m.rb.Read()
			if err != nil {
				return err
			}
			out = append(out, b)
		}
		fmt.Fprintf(config.Writer, "read %d: %q\n", len(out), out)
		return nil
	}
}

func (m *monitor) statsHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		fmt.Fprintf(config.Writer, "buffer: %d/%d full=%v notEmpty=%v overflows=%d\n",
			m.rb.Count(), m.rb.Capacity(), m.rb.IsFull(), m.rb.IsNotEmpty(), m.overflows)
		if m.tm != nil {
			fmt.Fprintf(config.Writer, "timer: interval=%d active=%v\n",
				m.tm.Interval(), m.tm.Active())
		}
		return nil
	}
}

func (m *monitor) overflowHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		fmt.Fprintf(config.Writer, "overflowed: %v\n", m.rb.DidOverflow())
		return nil
	}
}

func (m *monitor) tickHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		if m.tm == nil {
			return fmt.Errorf("no timer configured")
		}
		args := strings.Fields(input)[1:]
		n := 1
		if len(args) == 1 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
				return fmt.Errorf("usage: tick [n]")
			}
		}
		for i := 0; i < n; i++ {
			m.tm.Tick()
		}
		if m.tm.Expired() {
			fmt.Fprintf(config.Writer, "timer expired\n")
		}
		return nil
	}
}

func (m *monitor) sampleHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)[1:]
		if len(args) != 1 {
			return fmt.Errorf("usage: sample <v>")
		}
		v, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("usage: sample <v>")
		}
		sample := int32(v)

		for i, f := range m.filters {
			fmt.Fprintf(config.Writer, "%s: %d\n", m.filterIDs[i], f.Update(sample))
		}
		if m.lut != nil {
			fmt.Fprintf(config.Writer, "lut: %d\n", m.lut.Lookup(sample))
		}
		return nil
	}
}

func (m *monitor) fmtHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)[1:]
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: fmt <v> [decimals]")
		}
		v, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("usage: fmt <v> [decimals]")
		}
		decimals := 0
		if len(args) == 2 {
			if decimals, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("usage: fmt <v> [decimals]")
			}
		}

		var buf [16]byte
		n, err := numfmt.FixedPoint(buf[:], int32(v), decimals)
		if err != nil {
			return err
		}
		writeLine(config.Writer, buf[:n])
		return nil
	}
}

func (m *monitor) sumHandler() func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Fields(input)[1:]
		if len(args) != 1 {
			return fmt.Errorf("usage: sum <text>")
		}
		data := []byte(args[0])
		fmt.Fprintf(config.Writer, "sum8=%#02x xor8=%#02x internet=%#04x\n",
			checksum.Sum8(data), checksum.Xor8(data), checksum.Internet(data, 0))
		return nil
	}
}

func writeLine(w io.Writer, b []byte) {
	w.Write(b)
	w.Write([]byte{'\n'})
}
