package serial

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// ErrNoResponse means a command was sent but zero bytes came back within
// the wait window. Distinct from an empty set of decoded lines.
var ErrNoResponse = errors.New("no response")

// ErrNotConnected is returned when a command is sent before Connect.
var ErrNotConnected = errors.New("not connected")

const (
	// settleDelay lets the link stabilize after opening the port.
	settleDelay = 500 * time.Millisecond

	// drainPoll is the per-read timeout while draining a response. The
	// board emits no end-of-response marker, so a zero-byte read after
	// the fixed wait means the buffer is empty.
	drainPoll = 50 * time.Millisecond

	readChunkSize = 512
)

// openPort is swapped out in tests.
var openPort = serial.Open

// Conn is a request/response wrapper around one serial port. The NSH
// console on the board speaks newline-terminated text at 8-N-1.
type Conn struct {
	mu       sync.Mutex
	port     serial.Port
	portName string
	baudRate int
	timeout  time.Duration
	open     bool
	sleep    func(time.Duration)
	log      *zap.Logger
}

// NewConn creates an unconnected Conn for the named port.
func NewConn(portName string, baudRate int, timeout time.Duration, log *zap.Logger) *Conn {
	if log == nil {
		log = zap.NewNop()
	}
	return &Conn{
		portName: portName,
		baudRate: baudRate,
		timeout:  timeout,
		sleep:    time.Sleep,
		log:      log,
	}
}

// Connect opens the port at 8-N-1, waits for the link to settle and
// discards anything already buffered in either direction.
func (c *Conn) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	mode := &serial.Mode{
		BaudRate: c.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := openPort(c.portName, mode)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.portName, err)
	}

	if err := port.SetReadTimeout(c.timeout); err != nil {
		port.Close()
		return fmt.Errorf("set read timeout: %w", err)
	}

	c.sleep(settleDelay)

	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return fmt.Errorf("reset input buffer: %w", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		port.Close()
		return fmt.Errorf("reset output buffer: %w", err)
	}

	c.port = port
	c.open = true
	c.log.Info("connected",
		zap.String("port", c.portName),
		zap.Int("baud", c.baudRate),
	)
	return nil
}

// Disconnect closes the port. Idempotent and safe to call even if
// Connect never succeeded.
func (c *Conn) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	c.open = false
	if c.port != nil {
		c.port.Close()
	}
	c.log.Info("disconnected", zap.String("port", c.portName))
}

// Connected reports whether the port is open.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SendCommand writes command + "\n", sleeps for wait, then drains the
// response line by line until the buffer is empty or maxLines is hit.
// Blank lines are dropped; invalid UTF-8 bytes are discarded. Returns
// ErrNoResponse when zero bytes arrived.
func (c *Conn) SendCommand(command string, wait time.Duration, maxLines int) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrNotConnected
	}

	// Stale output from a previous command must not leak into this one.
	if err := c.port.ResetInputBuffer(); err != nil {
		return nil, fmt.Errorf("reset input buffer: %w", err)
	}

	payload := strings.TrimSpace(command) + "\n"
	if _, err := c.port.Write([]byte(payload)); err != nil {
		return nil, fmt.Errorf("write %q: %w", command, err)
	}
	if err := c.port.Drain(); err != nil {
		return nil, fmt.Errorf("drain %q: %w", command, err)
	}
	c.log.Debug("tx", zap.String("command", command))

	c.sleep(wait)

	lines, total, err := c.drainLines(maxLines)
	if err != nil {
		return nil, fmt.Errorf("read response to %q: %w", command, err)
	}
	if total == 0 {
		c.log.Debug("rx timeout", zap.String("command", command))
		return nil, ErrNoResponse
	}

	c.log.Debug("rx",
		zap.String("command", command),
		zap.Int("bytes", total),
		zap.Strings("lines", lines),
	)
	return lines, nil
}

// drainLines reads buffered bytes with a short poll timeout until a
// zero-byte read or maxLines decoded lines. Returns the non-blank
// lines and the total byte count received.
func (c *Conn) drainLines(maxLines int) ([]string, int, error) {
	if err := c.port.SetReadTimeout(drainPoll); err != nil {
		return nil, 0, err
	}
	defer c.port.SetReadTimeout(c.timeout)

	lines := []string{}
	var pending []byte
	buf := make([]byte, readChunkSize)
	total := 0

	for len(lines) < maxLines {
		n, err := c.port.Read(buf)
		if err != nil {
			return nil, total, err
		}
		if n == 0 {
			break
		}
		total += n
		pending = append(pending, buf[:n]...)

		for len(lines) < maxLines {
			idx := bytes.IndexByte(pending, '\n')
			if idx < 0 {
				break
			}
			if line := decodeLine(pending[:idx]); line != "" {
				lines = append(lines, line)
			}
			pending = pending[idx+1:]
		}
	}

	// Trailing data without a final newline still counts as a line.
	if len(lines) < maxLines {
		if line := decodeLine(pending); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, total, nil
}

func decodeLine(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), ""))
}
