package plugin

import (
	"fmt"
	"os"
	"os/exec"
)

// Open focuses the document at location when it is already open and loads
// it into a new tab otherwise, with a transient status message.
func (p *Plugin) Open(location string) error {
	w := p.window
	if w == nil {
		return ErrNotActive
	}
	if w.ActivateDocument(location) {
		return nil
	}
	if err := w.LoadLocation(location); err != nil {
		log.Errorf("open %s: %s", location, err)
		p.flash(fmt.Sprintf("Could not open '%s': %s", location, err))
		return err
	}
	p.flash(fmt.Sprintf("Loading file '%s'...", location))
	return nil
}

// Browse hands location to the configured opener.
func (p *Plugin) Browse(location string) error {
	name, args := browseCommand(p.opts.Opener, location, os.Getuid(), os.Getenv("SUDO_USER"))
	if err := p.opts.Launch(name, args...); err != nil {
		log.Errorf("browse %s: %s", location, err)
		p.flash(fmt.Sprintf("Could not browse to '%s': %s", location, err))
		return err
	}
	return nil
}

// Copy writes location to the clipboard.
func (p *Plugin) Copy(location string) error {
	if p.opts.Clipboard == nil {
		return fmt.Errorf("copy %s: no clipboard", location)
	}
	if err := p.opts.Clipboard.WriteText(location); err != nil {
		log.Errorf("copy %s: %s", location, err)
		p.flash(fmt.Sprintf("Could not copy '%s'", location))
		return err
	}
	return nil
}

// flash shows msg on the status bar until the status timeout expires.
func (p *Plugin) flash(msg string) {
	w := p.window
	if w == nil {
		return
	}
	status := w.StatusBar()
	if status == nil {
		return
	}
	id := status.Push(msg)
	w.After(p.opts.StatusTimeout, func() { status.Remove(id) })
}

// browseCommand builds the opener invocation. Under sudo the opener runs
// as the invoking user.
func browseCommand(opener []string, location string, uid int, sudoUser string) (string, []string) {
	argv := append(append([]string(nil), opener...), location)
	if uid == 0 && sudoUser != "" {
		argv = append([]string{"sudo", "-u", sudoUser}, argv...)
	}
	return argv[0], argv[1:]
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
