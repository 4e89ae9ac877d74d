package input

import (
	"bufio"
	"io"
	"time"
)

const (
	keyCtrlC     = 0x03
	keyBackspace = 0x08
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// DefaultEscapeDelay is how long a lone escape waits for the rest of a key
// sequence before it counts as the escape key
const DefaultEscapeDelay = 50 * time.Millisecond

type readResult struct {
	b   byte
	err error
}

// Decoder turns raw terminal bytes into commands. It expects the terminal to
// be in raw mode so that every key press arrives unbuffered.
type Decoder struct {
	r     *bufio.Reader
	delay time.Duration
	// pending is a read still in flight after an escape timed out; its byte
	// belongs to the next key
	pending chan readResult
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r), delay: DefaultEscapeDelay}
}

// SetEscapeDelay changes how long a lone escape waits for a sequence to follow
func (d *Decoder) SetEscapeDelay(delay time.Duration) {
	d.delay = delay
}

// Next blocks until a key maps to a command. Unmapped keys are skipped.
func (d *Decoder) Next() (Command, error) {
	for {
		b, err := d.readByte()
		if err != nil {
			return Command{}, err
		}
		if cmd := d.decode(b); cmd.Kind != None {
			return cmd, nil
		}
	}
}

func (d *Decoder) decode(b byte) Command {
	switch {
	case b == '\r' || b == '\n':
		return Command{Kind: Interact}
	case b == 's' || b == 'S':
		return Command{Kind: EndTurn}
	case b == 'Q' || b == keyCtrlC:
		return Command{Kind: Quit}
	case b == keyBackspace || b == keyDelete || b == 'x':
		return Command{Kind: Cancel}
	case b >= '1' && b <= '9':
		return Command{Kind: Select, Index: int(b - '1')}
	case b == keyEscape:
		return d.decodeEscape()
	default:
		return Command{}
	}
}

func (d *Decoder) readByte() (byte, error) {
	if d.pending != nil {
		res := <-d.pending
		d.pending = nil
		return res.b, res.err
	}
	return d.r.ReadByte()
}

// byteWithin returns the next byte if it is buffered or arrives within the
// escape delay. On timeout the read stays pending for the next call to Next.
func (d *Decoder) byteWithin() (byte, bool) {
	if d.r.Buffered() > 0 {
		b, err := d.r.ReadByte()
		return b, err == nil
	}

	ch := make(chan readResult, 1)
	go func() {
		b, err := d.r.ReadByte()
		ch <- readResult{b: b, err: err}
	}()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case res := <-ch:
		return res.b, res.err == nil
	case <-timer.C:
		d.pending = ch
		return 0, false
	}
}

// decodeEscape reads the rest of a CSI or SS3 sequence. An escape with
// nothing following it within the escape delay is the escape key, reported
// as Quit.
func (d *Decoder) decodeEscape() Command {
	intro, ok := d.byteWithin()
	if !ok {
		return Command{Kind: Quit}
	}
	if intro != '[' && intro != 'O' {
		return Command{}
	}

	final, err := d.readByte()
	if err != nil {
		return Command{}
	}
	switch final {
	case 'A':
		return Command{Kind: MoveUp}
	case 'B':
		return Command{Kind: MoveDown}
	case 'C':
		return Command{Kind: MoveRight}
	case 'D':
		return Command{Kind: MoveLeft}
	case 'F':
		return Command{Kind: EndTurn}
	}

	// Numeric form, e.g. ESC [ 4 ~ (End) or ESC [ 8 ~ (End on rxvt)
	param := final
	for final >= '0' && final <= '9' {
		if final, err = d.readByte(); err != nil {
			return Command{}
		}
	}
	if final == '~' && (param == '4' || param == '8') {
		return Command{Kind: EndTurn}
	}
	return Command{}
}
