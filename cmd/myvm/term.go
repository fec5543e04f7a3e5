package main

import (
	"bytes"
	"context"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/myvm/io"
)

const (
	KEY_CTRL_C = 0x03
	KEY_CTRL_D = 0x04
	KEY_DEL    = 0x7f
	KEY_BS     = 0x08
)

// terminal reads stdin and feeds bytes into an interactive input.
// A terminal stdin is put into raw mode, so bytes arrive as they are typed.
type terminal struct {
	Verbose bool

	input    *io.Interactive
	cancel   context.CancelFunc
	fd       int
	raw      bool
	oldState *term.State
}

// startTerminal begins reading stdin in a goroutine. Call Stop to restore stdin.
func startTerminal(input *io.Interactive, cancel context.CancelFunc, verbose bool) (host *terminal) {
	host = &terminal{
		Verbose: verbose,
		input:   input,
		cancel:  cancel,
		fd:      int(os.Stdin.Fd()),
	}

	if term.IsTerminal(host.fd) {
		oldState, err := term.MakeRaw(host.fd)
		if err != nil {
			log.Printf("terminal: failed to set raw mode: %v", err)
		} else {
			host.oldState = oldState
			host.raw = true
		}
	}

	go host.read()

	return
}

// read copies stdin into the input until end of file, Ctrl-D or Ctrl-C.
func (host *terminal) read() {
	if !host.raw {
		_, err := host.input.ReadFrom(os.Stdin)
		if err != nil {
			log.Printf("terminal: %v", err)
			_ = host.input.Close()
		}
		return
	}

	buf := make([]byte, 256)

	for {
		n, err := os.Stdin.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case KEY_CTRL_C:
				host.cancel()
				return
			case KEY_CTRL_D:
				_ = host.input.Close()
				return
			case '\r':
				// Raw mode sends CR for Enter.
				b = '\n'
			case KEY_DEL:
				b = KEY_BS
			}
			aerr := host.input.Append(b)
			if aerr != nil && host.Verbose {
				log.Printf("terminal: %v", aerr)
			}
		}
		if err != nil {
			_ = host.input.Close()
			return
		}
	}
}

// Stop restores stdin. The reader goroutine exits with the process.
func (host *terminal) Stop() {
	if host.oldState != nil {
		_ = term.Restore(host.fd, host.oldState)
		host.oldState = nil
	}
}

// Output returns a writer for program output. In raw mode newlines no longer
// return the carriage, so they are expanded to CR LF.
func (host *terminal) Output(file *os.File) *crlfWriter {
	return &crlfWriter{File: file, Expand: host.raw && file == os.Stdout}
}

type crlfWriter struct {
	*os.File
	Expand bool
}

func (cw *crlfWriter) Write(p []byte) (n int, err error) {
	if !cw.Expand {
		return cw.File.Write(p)
	}

	_, err = cw.File.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return
	}

	n = len(p)
	return
}
