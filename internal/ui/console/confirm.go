package console

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/tcnksm/go-input"
)

// lineReader serves lines from a channel as a byte stream, one line per Read
// at most, so a confirmation never consumes input meant for the chat.
type lineReader struct {
	ctx     context.Context
	lines   <-chan string
	pending []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		select {
		case <-r.ctx.Done():
			return 0, r.ctx.Err()
		case line, ok := <-r.lines:
			if !ok {
				return 0, io.EOF
			}
			r.pending = []byte(line + "\n")
		}
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// lineConfirmer asks yes/no questions on the console.
type lineConfirmer struct {
	out   io.Writer
	lines <-chan string
}

func (c *lineConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	ui := &input.UI{
		Writer: c.out,
		Reader: &lineReader{ctx: ctx, lines: c.lines},
	}

	answer, err := ui.Ask(prompt+" [y/n]", &input.Options{
		Default:     "n",
		HideDefault: true,
		Loop:        true,
		ValidateFunc: func(answer string) error {
			switch answer {
			case "y", "Y", "yes", "n", "N", "no":
				return nil
			default:
				return errors.Errorf("please enter 'y' or 'n'")
			}
		},
	})
	if err != nil {
		return false, errors.Wrap(err, "read confirmation")
	}

	switch answer {
	case "y", "Y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
