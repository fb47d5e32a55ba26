package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sqweek/dialog"
)

var ErrInputUnreadable = errors.New("input unreadable")

// readSong loads a song file, or stdin when path is "-".
func readSong(path string) (string, error) {
	if path == "-" {
		return scanSong(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	defer f.Close()
	return scanSong(f)
}

// scanSong joins the lines of r into one song. Blank lines and lines
// starting with '#' are skipped.
func scanSong(r io.Reader) (string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	return strings.Join(lines, " "), nil
}

// pickSong asks for a song file with the native open dialog. It returns ""
// when the dialog is cancelled.
func pickSong() (string, error) {
	path, err := dialog.File().Filter("Song files", "txt", "song").Title("Open Song").Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	return path, nil
}
