package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dayFormat = "20060102"

// DayFile is an append-only writer that rotates to a new file whenever the
// UTC date changes. Files are named <prefix>.<yyyymmdd>.log so rotated
// siblings share the <prefix>.* pattern used by retention pruning.
type DayFile struct {
	dir    string
	prefix string

	mu      sync.Mutex
	current *os.File
	day     string
	now     func() time.Time
}

// NewDayFile prepares a day-rotated stream rooted at dir. No file is opened
// until the first write.
func NewDayFile(dir, prefix string) *DayFile {
	return &DayFile{dir: dir, prefix: prefix, now: time.Now}
}

// Write appends to today's file, rotating first if the date has changed.
func (d *DayFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	day := d.now().UTC().Format(dayFormat)
	if d.current == nil || day != d.day {
		if err := d.rotateLocked(day); err != nil {
			return 0, err
		}
	}
	return d.current.Write(p)
}

// Path returns the file the stream is currently writing, or would write next.
func (d *DayFile) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	day := d.day
	if day == "" {
		day = d.now().UTC().Format(dayFormat)
	}
	return d.pathFor(day)
}

// Pattern returns the glob matching every rotated file of this stream.
func (d *DayFile) Pattern() string {
	return d.prefix + ".*"
}

// Close closes the currently open file, if any.
func (d *DayFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return nil
	}
	err := d.current.Close()
	d.current = nil
	return err
}

func (d *DayFile) rotateLocked(day string) error {
	if d.current != nil {
		_ = d.current.Close()
		d.current = nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(d.pathFor(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	d.current = file
	d.day = day
	return nil
}

func (d *DayFile) pathFor(day string) string {
	return filepath.Join(d.dir, fmt.Sprintf("%s.%s.log", d.prefix, day))
}
