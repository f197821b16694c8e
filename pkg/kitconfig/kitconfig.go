package kitconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type FilterKind int

const (
	FilterAvg FilterKind = 0
	FilterExp FilterKind = 1
)

// KitConfig represents the structure of a bufmon scenario file. The
// runtime builds its own objects from these values at startup.
type KitConfig struct {
	// buffer <capacity> [overwrite]
	BufferCapacity int
	Overwrite      bool

	// timer <interval-ticks> [periodic]; zero interval means no timer
	TimerInterval uint32
	TimerPeriodic bool

	// filter avg <window> | filter exp <num> <den>
	Filters []FilterConfig

	// lut <x0>:<y0> <x1>:<y1> ...
	LutX []int32
	LutY []int32
}

type FilterConfig struct {
	Kind     FilterKind
	Window   int
	AlphaNum uint16
	AlphaDen uint16
}

type ParseFunc func(int, string, *KitConfig) error

var parseCommands = map[string]ParseFunc{
	"buffer": parseBuffer,
	"timer":  parseTimer,
	"filter": parseFilter,
	"lut":    parseLut,
}

func parseBuffer(ln int, line string, config *KitConfig) error {
	tokens := strings.Fields(line)

	if len(tokens) < 2 || len(tokens) > 3 {
		return newErrString(ln, "buffer directive must have format:  buffer <capacity> [overwrite]")
	}

	capacity, err := strconv.Atoi(tokens[1])
	if err != nil || capacity < 1 {
		return newErrString(ln, "Invalid buffer capacity:  %s", tokens[1])
	}
	config.BufferCapacity = capacity

	if len(tokens) == 3 {
		if tokens[2] != "overwrite" {
			return newErrString(ln, "Unrecognized buffer option %s", tokens[2])
		}
		config.Overwrite = true
	}
	return nil
}

func parseTimer(ln int, line string, config *KitConfig) error {
	tokens := strings.Fields(line)

	if len(tokens) < 2 || len(tokens) > 3 {
		return newErrString(ln, "timer directive must have format:  timer <interval-ticks> [periodic]")
	}

	interval, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil || interval == 0 {
		return newErrString(ln, "Invalid timer interval:  %s", tokens[1])
	}
	config.TimerInterval = uint32(interval)

	if len(tokens) == 3 {
		if tokens[2] != "periodic" {
			return newErrString(ln, "Unrecognized timer option %s", tokens[2])
		}
		config.TimerPeriodic = true
	}
	return nil
}

func parseFilter(ln int, line string, config *KitConfig) error {
	tokens := strings.Fields(line)

	if len(tokens) < 2 {
		return newErrString(ln, "Usage:  filter [avg|exp] ...")
	}
	kind := tokens[1]
	filterTokens := tokens[2:]

	switch kind {
	case "avg":
		if len(filterTokens) != 1 {
			return newErrString(ln, "Usage:  filter avg <window>")
		}
		window, err := strconv.Atoi(filterTokens[0])
		if err != nil || window < 1 {
			return newErrString(ln, "Invalid filter window:  %s", filterTokens[0])
		}
		config.Filters = append(config.Filters, FilterConfig{Kind: FilterAvg, Window: window})
	case "exp":
		if len(filterTokens) != 2 {
			return newErrString(ln, "Usage:  filter exp <num> <den>")
		}
		num, err := strconv.ParseUint(filterTokens[0], 10, 16)
		if err != nil {
			return newErrString(ln, "Invalid alpha numerator:  %s", filterTokens[0])
		}
		den, err := strconv.ParseUint(filterTokens[1], 10, 16)
		if err != nil {
			return newErrString(ln, "Invalid alpha denominator:  %s", filterTokens[1])
		}
		if num == 0 || den == 0 || num > den {
			return newErrString(ln, "Alpha must satisfy 0 < num <= den, got %d/%d", num, den)
		}
		config.Filters = append(config.Filters, FilterConfig{
			Kind:     FilterExp,
			AlphaNum: uint16(num),
			AlphaDen: uint16(den),
		})
	default:
		return newErrString(ln, "Unrecognized filter kind %s", kind)
	}

	return nil
}

func parseLut(ln int, line string, config *KitConfig) error {
	tokens := strings.Fields(line)

	if len(tokens) < 3 {
		return newErrString(ln, "lut directive must have format:  lut <x0>:<y0> <x1>:<y1> ...")
	}

	xs := make([]int32, 0, len(tokens)-1)
	ys := make([]int32, 0, len(tokens)-1)
	for _, pair := range tokens[1:] {
		sx, sy, found := strings.Cut(pair, ":")
		if !found {
			return newErrString(ln, "Invalid lut point %s, want <x>:<y>", pair)
		}
		x, err := strconv.ParseInt(sx, 10, 32)
		if err != nil {
			return newErr(ln, err)
		}
		y, err := strconv.ParseInt(sy, 10, 32)
		if err != nil {
			return newErr(ln, err)
		}
		xs = append(xs, int32(x))
		ys = append(ys, int32(y))
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return newErrString(ln, "lut x values must be strictly increasing")
		}
	}

	config.LutX = xs
	config.LutY = ys
	return nil
}

func newErrString(line int, msg string, args ...any) error {
	_msg := fmt.Sprintf(msg, args...)
	return errors.New(fmt.Sprintf("Parse error on line %d:  %s", line, _msg))
}

func newErr(line int, err error) error {
	return errors.New(fmt.Sprintf("Parse error on line %d:  %s", line, err.Error()))
}

// Parse a scenario file
func ParseConfig(configFile string) (*KitConfig, error) {
	fd, err := os.Open(configFile)
	if err != nil {
		return nil, errors.New("Unable to open file")
	}
	defer fd.Close()

	config := &KitConfig{
		BufferCapacity: 64, // default when no buffer directive appears
		Filters:        make([]FilterConfig, 0, 1),
	}

	scanner := bufio.NewScanner(fd)
	ln := 0
	for scanner.Scan() {
		ln++

		line := scanner.Text()
		tokens := strings.Fields(line)

		if len(tokens) == 0 {
			continue
		}

		// Skip comments
		head := tokens[0]
		if head[0] == '#' {
			continue
		}

		pf, found := parseCommands[head]
		if !found {
			return nil, newErrString(ln, "Unrecognized token %s", head)
		}
		err = pf(ln, line, config)
		if err != nil {
			return nil, err
		}
	}

	return config, nil
}
