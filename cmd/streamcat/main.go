package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/glyphlab/memstream/arena"
	"github.com/glyphlab/memstream/charstream"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Input file (default stdin)")
		blockSize   = flag.Int("block", 256, "Elements per read")
		ringSize    = flag.Int("ring", 0, "Route data through a byte ring of this capacity")
		byteMode    = flag.Bool("bytes", false, "Read raw bytes instead of decoding characters")
		showStats   = flag.Bool("stats", false, "Print stream and arena stats to stderr when done")
		verbose     = flag.Bool("v", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			arena.SetLogger(logger)
			charstream.SetLogger(logger)
		}
	}

	if *interactive {
		if err := runInteractive(*inFile, *blockSize); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *blockSize, *ringSize, *byteMode, *showStats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openInput(inFile string) (io.ReadCloser, string, error) {
	if inFile == "" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(inFile)
	if err != nil {
		return nil, "", err
	}
	return f, inFile, nil
}

func run(inFile string, blockSize, ringSize int, byteMode, showStats bool) error {
	in, name, err := openInput(inFile)
	if err != nil {
		return err
	}

	// All per-run scratch comes from one arena so the teardown is a single
	// destroy.
	scratchBytes := blockSize * 4
	if ringSize > 0 {
		scratchBytes += ringSize + blockSize
	}
	ar, err := arena.Create(scratchBytes+1024, "streamcat scratch")
	if err != nil {
		return err
	}
	defer ar.TryDestroy()

	var cs charstream.CharStream
	if ringSize > 0 {
		if err := pump(&cs, in, ar, ringSize, blockSize, byteMode); err != nil {
			return err
		}
	} else {
		cs.LoadStream(in, ar.Alloc(blockSize*4))
	}
	defer cs.Dispose()

	if err := drain(&cs, blockSize, byteMode); err != nil {
		return err
	}

	if showStats {
		st := cs.Stats()
		fmt.Fprintf(os.Stderr, "%s: source=%s read=%d elements\n", name, st.Source, st.TotalRead)
		fmt.Fprintln(os.Stderr, ar.String())
	}
	return nil
}

// pump feeds a byte ring from the reader, demonstrating producer-side
// backpressure: never queue more than the ring's free capacity, drain a
// block to stdout whenever the ring fills up.
func pump(cs *charstream.CharStream, in io.ReadCloser, ar *arena.Arena, ringSize, blockSize int, byteMode bool) error {
	defer in.Close()

	ring := ar.Alloc(ringSize)
	if ring == nil {
		return fmt.Errorf("ring capacity %d exceeds scratch arena", ringSize)
	}
	cs.LoadByteRing(ring)

	chunk := ar.Alloc(blockSize)
	if chunk == nil {
		return fmt.Errorf("block size %d exceeds scratch arena", blockSize)
	}
	byteOut := make([]byte, blockSize)
	runeOut := make([]rune, blockSize)
	for {
		n, err := in.Read(chunk)
		if n > 0 {
			queued := 0
			for queued < n {
				free := ringSize - cs.Stats().Live
				if free == 0 {
					if byteMode {
						m, rerr := cs.ReadBytes(byteOut)
						if rerr != nil {
							return rerr
						}
						os.Stdout.Write(byteOut[:m])
					} else {
						m, rerr := cs.ReadChars(runeOut)
						if rerr != nil {
							return rerr
						}
						fmt.Print(string(runeOut[:m]))
					}
					continue
				}
				step := min(free, n-queued)
				if qerr := cs.QueueBytes(chunk[queued : queued+step]); qerr != nil {
					return qerr
				}
				queued += step
			}
		}
		if err == io.EOF {
			cs.Finish()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// drain reads blocks until the stream latches Exhausted. A 0 count is a
// retry, not an end: rings report it while empty and readers may return
// zero-byte blocks.
func drain(cs *charstream.CharStream, blockSize int, byteMode bool) error {
	if byteMode {
		buf := make([]byte, blockSize)
		for {
			n, err := cs.ReadBytes(buf)
			if err != nil {
				return err
			}
			if n == charstream.Exhausted {
				return nil
			}
			os.Stdout.Write(buf[:n])
		}
	}

	buf := make([]rune, blockSize)
	for {
		n, err := cs.ReadChars(buf)
		if err != nil {
			return err
		}
		if n == charstream.Exhausted {
			return nil
		}
		fmt.Print(string(buf[:n]))
	}
}
