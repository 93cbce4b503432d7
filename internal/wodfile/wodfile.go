// Package wodfile reads batch notation files and writes the markdown workout
// log with its front matter.
package wodfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the front matter date format.
const DateLayout = "2006-01-02"

// Entry is one workout line of a batch file.
type Entry struct {
	Line     int
	Notation string
	Comments string
	Name     string
}

// LineError reports a batch line with the wrong number of sections. It does
// not stop the rest of the batch.
type LineError struct {
	Line     int
	Text     string
	Sections int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: expected 1 to 3 '|' separated sections, got %d", e.Line, e.Sections)
}

// ParseLine splits "notation", "notation|comments" or
// "notation|comments|name". Comments may use a literal \n for line breaks.
func ParseLine(n int, text string) (Entry, error) {
	parts := strings.Split(text, "|")
	if len(parts) > 3 {
		return Entry{}, &LineError{Line: n, Text: text, Sections: len(parts)}
	}
	e := Entry{Line: n, Notation: strings.TrimSpace(parts[0])}
	if e.Notation == "" {
		return Entry{}, &LineError{Line: n, Text: text, Sections: 0}
	}
	if len(parts) > 1 {
		e.Comments = strings.ReplaceAll(strings.TrimSpace(parts[1]), `\n`, "\n")
	}
	if len(parts) > 2 {
		e.Name = strings.TrimSpace(parts[2])
	}
	return e, nil
}

// Read parses every line of r. Blank lines and '#' comments are skipped.
// Malformed lines come back as *LineError values in errs; err is only set
// when r itself fails.
func Read(r io.Reader) (entries []Entry, errs []error, err error) {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, lerr := ParseLine(n, text)
		if lerr != nil {
			errs = append(errs, lerr)
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading batch: %w", err)
	}
	return entries, errs, nil
}

// ReadFile opens and parses a batch file.
func ReadFile(path string) ([]Entry, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Header is the front matter block. Title is the output file's stem.
func Header(title string, date time.Time) string {
	return fmt.Sprintf("---\ntitle: %q\ndate: %s\ndraft: false\n---\n", title, date.Format(DateLayout))
}

// Paths expands an output file into one path per language. The first
// language keeps the plain name and every other one gets "<base>.<lang>.md".
func Paths(output string, languages []string) []string {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	paths := []string{base + ".md"}
	for i, lang := range languages {
		lang = strings.TrimSpace(lang)
		if i == 0 || lang == "" {
			continue
		}
		paths = append(paths, base+"."+lang+".md")
	}
	return paths
}

// ParseLanguages splits a comma separated language list.
func ParseLanguages(s string) []string {
	var out []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Log is a set of markdown files receiving identical content.
type Log struct {
	Paths []string
}

// NewLog builds the log for output and languages.
func NewLog(output string, languages []string) *Log {
	return &Log{Paths: Paths(output, languages)}
}

// Title is the stem of the first path.
func (l *Log) Title() string {
	return strings.TrimSuffix(filepath.Base(l.Paths[0]), ".md")
}

// Init writes the front matter to every file that does not exist yet, or to
// all of them when force is set. It reports how many files it wrote.
func (l *Log) Init(date time.Time, force bool) (int, error) {
	header := Header(l.Title(), date)
	written := 0
	for _, p := range l.Paths {
		if !force {
			if _, err := os.Stat(p); err == nil {
				continue
			} else if !errors.Is(err, os.ErrNotExist) {
				return written, fmt.Errorf("checking %s: %w", p, err)
			}
		}
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("creating %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(p, []byte(header), 0o644); err != nil {
			return written, fmt.Errorf("writing header to %s: %w", p, err)
		}
		written++
	}
	return written, nil
}

// Append adds a rendered section to every file. Files must already exist.
func (l *Log) Append(section string) error {
	for _, p := range l.Paths {
		f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("opening %s: %w", p, err)
		}
		if _, err := io.WriteString(f, section); err != nil {
			f.Close()
			return fmt.Errorf("appending to %s: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", p, err)
		}
	}
	return nil
}
