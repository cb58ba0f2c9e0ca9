package ui

import "time"

const flashTTL = 5 * time.Second

// flash is the transient info line under the menu. A message stays up
// for flashTTL; a soft clear before then leaves it alone.
type flash struct {
	text  string
	until time.Time
	now   func() time.Time
}

func (f *flash) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

func (f *flash) set(text string) {
	f.text = text
	f.until = f.clock().Add(flashTTL)
}

// expire drops the message only once its time is up.
func (f *flash) expire() {
	if f.text != "" && !f.clock().Before(f.until) {
		f.reset()
	}
}

func (f *flash) reset() {
	f.text = ""
	f.until = time.Time{}
}

// current returns the live message, dropping an expired one first.
func (f *flash) current() string {
	f.expire()
	return f.text
}

func (m *Model) setInfo(message string) { m.info.set(message) }

func (m *Model) clearInfo() { m.info.expire() }

func (m *Model) forceClearInfo() { m.info.reset() }

func (m *Model) currentInfo() string { return m.info.current() }
