package ffprobe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// DefaultBinary is the executable used when no binary is configured.
const DefaultBinary = "ffprobe"

// VideoInfo describes the first video stream of a file.
type VideoInfo struct {
	Width     int
	Height    int
	FrameRate FrameRate
}

// Resolution renders the stream geometry as WIDTHxHEIGHT.
func (v VideoInfo) Resolution() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// FrameRate is a frame rate expressed as Num/Den frames per second.
type FrameRate struct {
	Num int64
	Den int64
}

// Float64 returns the frame rate as a floating point value.
func (r FrameRate) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// String renders the quotient truncated to two decimal places with trailing
// zeros dropped: 30000/1001 is "29.97", 30/1 is "30", 25/2 is "12.5".
func (r FrameRate) String() string {
	if r.Den <= 0 {
		return "0"
	}
	hundredths := r.Num * 100 / r.Den
	whole := strconv.FormatInt(hundredths/100, 10)
	frac := hundredths % 100
	switch {
	case frac == 0:
		return whole
	case frac%10 == 0:
		return whole + "." + strconv.FormatInt(frac/10, 10)
	default:
		return fmt.Sprintf("%s.%02d", whole, frac)
	}
}

// Runner executes the probe command and returns its standard output.
type Runner func(ctx context.Context, binary string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	// Own process group: a terminal Ctrl-C must not kill a probe mid-file.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd.Output()
}

// Prober inspects files with ffprobe.
type Prober struct {
	Binary string
	Run    Runner
}

// New returns a Prober for the given ffprobe executable.
func New(binary string) *Prober {
	return &Prober{Binary: binary}
}

// Probe reports the first video stream of path. The boolean is false when
// ffprobe fails, the file has no video stream, or the output does not parse.
func (p *Prober) Probe(ctx context.Context, path string) (VideoInfo, bool) {
	binary := DefaultBinary
	run := Runner(execRunner)
	if p != nil {
		if b := strings.TrimSpace(p.Binary); b != "" {
			binary = b
		}
		if p.Run != nil {
			run = p.Run
		}
	}
	if strings.TrimSpace(path) == "" {
		return VideoInfo{}, false
	}
	output, err := run(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-of", "csv=p=0",
		"--", path,
	)
	if err != nil {
		return VideoInfo{}, false
	}
	info, err := ParseStreamCSV(string(output))
	if err != nil {
		return VideoInfo{}, false
	}
	return info, true
}

// Probe is a convenience wrapper around Prober.Probe.
func Probe(ctx context.Context, binary, path string) (VideoInfo, bool) {
	return New(binary).Probe(ctx, path)
}

var errNoStream = errors.New("ffprobe: no video stream in output")

// ParseStreamCSV parses "width,height,rate" from the first non-empty line of
// ffprobe csv output.
func ParseStreamCSV(output string) (VideoInfo, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			return VideoInfo{}, fmt.Errorf("ffprobe: expected width,height,rate, got %q", line)
		}
		width, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || width <= 0 {
			return VideoInfo{}, fmt.Errorf("ffprobe: invalid width %q", fields[0])
		}
		height, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || height <= 0 {
			return VideoInfo{}, fmt.Errorf("ffprobe: invalid height %q", fields[1])
		}
		rate, err := ParseFrameRate(fields[2])
		if err != nil {
			return VideoInfo{}, err
		}
		return VideoInfo{Width: width, Height: height, FrameRate: rate}, nil
	}
	if err := scanner.Err(); err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe: read output: %w", err)
	}
	return VideoInfo{}, errNoStream
}

// ParseFrameRate parses "num/den", an integer, or a decimal frame rate.
// Zero, negative, and non-numeric rates are rejected.
func ParseFrameRate(value string) (FrameRate, error) {
	value = strings.TrimSpace(value)
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, errN := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		d, errD := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if errN != nil || errD != nil || n <= 0 || d <= 0 {
			return FrameRate{}, fmt.Errorf("ffprobe: invalid frame rate %q", value)
		}
		return FrameRate{Num: n, Den: d}, nil
	}
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" && frac == "" {
		return FrameRate{}, fmt.Errorf("ffprobe: empty frame rate")
	}
	if len(frac) > 9 {
		return FrameRate{}, fmt.Errorf("ffprobe: frame rate %q has too many decimals", value)
	}
	den := int64(1)
	for range len(frac) {
		den *= 10
	}
	n, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil || n <= 0 {
		return FrameRate{}, fmt.Errorf("ffprobe: invalid frame rate %q", value)
	}
	return FrameRate{Num: n, Den: den}, nil
}
