package clipboardx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend accepted the text.
var ErrUnavailable = errors.New("no clipboard available")

type command struct {
	name string
	args []string
}

// systemWrite is atotto/clipboard, which covers xclip, xsel, wl-copy,
// termux, pbcopy and the Windows API.
var systemWrite = clipboard.WriteAll

// writeCommands are tried when the system clipboard fails. WSL has no X or
// Wayland clipboard but can reach the Windows one.
var writeCommands = []command{
	{name: "clip.exe"},
}

// Writer copies text to the system clipboard. The zero value is ready to
// use.
type Writer struct {
	// Terminal receives the OSC 52 sequence; nil means os.Stdout when it is
	// a terminal.
	Terminal io.Writer
}

// WriteText stores text in every clipboard that accepts it and fails only
// when none did.
func (w *Writer) WriteText(text string) error {
	var errs []error
	if err := systemWrite(text); err == nil {
		return nil
	} else {
		errs = append(errs, err)
	}
	if err := runWriteCommands(text); err == nil {
		return nil
	} else {
		errs = append(errs, err)
	}
	if err := w.writeOSC52(text); err == nil {
		return nil
	} else {
		errs = append(errs, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

func runWriteCommands(text string) error {
	for _, c := range writeCommands {
		if _, err := exec.LookPath(c.name); err != nil {
			continue
		}
		cmd := exec.Command(c.name, c.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return errors.New("no clipboard command succeeded")
}

func (w *Writer) writeOSC52(text string) error {
	if text == "" {
		return errors.New("osc52: empty text")
	}
	out := w.Terminal
	if out == nil {
		fi, err := os.Stdout.Stat()
		if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
			return errors.New("osc52: stdout is not a terminal")
		}
		out = os.Stdout
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(out, "\x1b]52;c;%s\x07", encoded)
	return err
}
