// Command sidframe turns text register writes into the byte stream sidshield reads.
//
// Each input line becomes one frame: whitespace separated "addr=data" hex pairs,
// e.g. "18=0f 04=11". Blank lines and lines starting with '#' are skipped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-sidshield/internal/frame"
	"github.com/coreman2200/funtimes-sidshield/internal/sid"
)

func main() {
	delay := flag.Duration("delay", 0, "pause between frames, e.g. 20ms")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	n, err := convert(os.Stdin, os.Stdout, *delay)
	if err != nil {
		log.Fatal().Err(err).Int("frames", n).Msg("sidframe")
	}
}

// convert writes one frame per non-empty line of in and returns the number of frames written.
func convert(in io.Reader, out io.Writer, delay time.Duration) (int, error) {
	sc := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	n, line := 0, 0
	var buf []byte
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		writes, err := parseLine(text)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		if buf, err = frame.Append(buf[:0], writes...); err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := w.Write(buf); err != nil {
			return n, err
		}
		n++
		if delay > 0 {
			if err := w.Flush(); err != nil {
				return n, err
			}
			time.Sleep(delay)
		}
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, w.Flush()
}

func parseLine(text string) ([]sid.RegisterWrite, error) {
	var out []sid.RegisterWrite
	for _, tok := range strings.Fields(text) {
		a, d, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, fmt.Errorf("%q: want addr=data", tok)
		}
		addr, err := strconv.ParseUint(a, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%q: address: %w", tok, err)
		}
		data, err := strconv.ParseUint(d, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%q: data: %w", tok, err)
		}
		w, err := sid.NewRegisterWrite(uint8(addr), uint8(data))
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
