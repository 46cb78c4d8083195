package proc

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// armDelegator redirects SIGINT from the interpreter to pid's process group
// until the returned disarm function runs. Arm and disarm always come in
// pairs around a foreground wait so no handler outlives its job.
func (s *Session) armDelegator(pid int) (disarm func()) {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-interrupts:
				// A negative pid targets the whole process group.
				_ = unix.Kill(-pid, unix.SIGINT)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(interrupts)
		close(done)
	}
}
