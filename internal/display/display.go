// Package display renders directory listings, prompts and error lines for
// the terminal.
package display

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/marcelocantos/cotsh/internal/shellerr"
)

// Options selects an ls output format.
type Options struct {
	Long       bool // -l
	OnePerLine bool // -1
	Classify   bool // -F
	Recursive  bool // -R
	Across     bool // -x
}

// Renderer writes styled output. The zero value is not usable; call New.
type Renderer struct {
	color bool
	width int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor turns styling on or off.
func WithColor(on bool) Option {
	return func(r *Renderer) { r.color = on }
}

// WithWidth fixes the grid width instead of asking the terminal.
func WithWidth(n int) Option {
	return func(r *Renderer) { r.width = n }
}

// New returns a Renderer. Colour is off unless WithColor enables it.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Color reports whether the renderer styles its output.
func (r *Renderer) Color() bool { return r.color }

type palette struct {
	dir, exec, link, err, prompt lipgloss.Style
}

func (r *Renderer) palette(w io.Writer) palette {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(termenv.ANSI)
	return palette{
		dir:    lr.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		exec:   lr.NewStyle().Foreground(lipgloss.Color("10")),
		link:   lr.NewStyle().Foreground(lipgloss.Color("14")),
		err:    lr.NewStyle().Foreground(lipgloss.Color("9")),
		prompt: lr.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

func (r *Renderer) paint(st lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return st.Render(s)
}

// Prompt styles prompt text for w. Trailing spaces are left unstyled.
func (r *Renderer) Prompt(w io.Writer, text string) string {
	body := strings.TrimRight(text, " ")
	if body == "" {
		return text
	}
	return r.paint(r.palette(w).prompt, body) + text[len(body):]
}

// Error writes one "name: msg" error line to w.
func (r *Renderer) Error(w io.Writer, name, msg string) {
	line := msg
	if name != "" {
		line = name + ": " + msg
	}
	fmt.Fprintln(w, r.paint(r.palette(w).err, line))
}

// Clear clears the screen and homes the cursor.
func (r *Renderer) Clear(w io.Writer) error {
	termenv.NewOutput(w).ClearScreen()
	return nil
}

// List writes the visible entries of dir to w in the format opts selects.
func (r *Renderer) List(w io.Writer, dir string, opts Options) error {
	if !opts.Recursive {
		entries, err := readVisible(dir)
		if err != nil {
			return err
		}
		return r.listEntries(w, entries, opts)
	}
	return r.listTree(w, dir, opts, true)
}

func (r *Renderer) listTree(w io.Writer, dir string, opts Options, first bool) error {
	entries, err := readVisible(dir)
	if err != nil {
		return err
	}
	if !first {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s:\n", dir)
	if err := r.listEntries(w, entries, opts); err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := r.listTree(w, filepath.Join(dir, e.Name()), opts, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func readVisible(dir string) ([]fs.DirEntry, error) {
	all, err := os.ReadDir(dir)
	if err != nil {
		return nil, shellerr.Errorf(shellerr.ErrIO, "cannot open directory %s: %v", dir, err)
	}
	visible := all[:0]
	for _, e := range all {
		if !strings.HasPrefix(e.Name(), ".") {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// cell is one entry prepared for output: text is what is printed, width its
// display width before styling.
type cell struct {
	text  string
	width int
}

func (r *Renderer) cells(w io.Writer, entries []fs.DirEntry, opts Options) []cell {
	p := r.palette(w)
	cells := make([]cell, len(entries))
	for i, e := range entries {
		name := e.Name()
		var suffix string
		st, styled := lipgloss.Style{}, false
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			st, styled, suffix = p.link, true, "@"
		case e.IsDir():
			st, styled, suffix = p.dir, true, "/"
		case isExecutable(e):
			st, styled, suffix = p.exec, true, "*"
		}
		if !opts.Classify {
			suffix = ""
		}
		text := name
		if styled {
			text = r.paint(st, name)
		}
		cells[i] = cell{text: text + suffix, width: runewidth.StringWidth(name + suffix)}
	}
	return cells
}

func isExecutable(e fs.DirEntry) bool {
	info, err := e.Info()
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

func (r *Renderer) listEntries(w io.Writer, entries []fs.DirEntry, opts Options) error {
	if len(entries) == 0 {
		return nil
	}
	cells := r.cells(w, entries, opts)
	switch {
	case opts.Long:
		return r.writeLong(w, entries, cells)
	case opts.OnePerLine:
		for _, c := range cells {
			fmt.Fprintln(w, c.text)
		}
		return nil
	default:
		width := r.width
		if width <= 0 {
			width = Width(w)
		}
		writeGrid(w, cells, width, opts.Across)
		return nil
	}
}

func (r *Renderer) writeLong(w io.Writer, entries []fs.DirEntry, cells []cell) error {
	infos := make([]fs.FileInfo, len(entries))
	sizeWidth := 1
	for i, e := range entries {
		info, err := e.Info()
		if err != nil {
			return shellerr.Errorf(shellerr.ErrIO, "cannot access %s: %v", e.Name(), err)
		}
		infos[i] = info
		if n := len(fmt.Sprint(info.Size())); n > sizeWidth {
			sizeWidth = n
		}
	}
	for i, info := range infos {
		fmt.Fprintf(w, "%s %*d %s %s\n",
			info.Mode(), sizeWidth, info.Size(), info.ModTime().Format("Jan _2 15:04"), cells[i].text)
	}
	return nil
}

// writeGrid lays cells out in columns that fit width. Entries run down the
// columns unless across is set.
func writeGrid(w io.Writer, cells []cell, width int, across bool) {
	maxw := 0
	for _, c := range cells {
		if c.width > maxw {
			maxw = c.width
		}
	}
	colWidth := maxw + 2
	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}
	if cols > len(cells) {
		cols = len(cells)
	}
	rows := (len(cells) + cols - 1) / cols
	if !across {
		cols = (len(cells) + rows - 1) / rows
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if across {
				i = row*cols + col
			}
			if i >= len(cells) {
				continue
			}
			c := cells[i]
			b.WriteString(c.text)
			next := col + 1
			last := next == cols
			if !last {
				j := next*rows + row
				if across {
					j = row*cols + next
				}
				last = j >= len(cells)
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colWidth-c.width))
			}
		}
		b.WriteByte('\n')
	}
	io.WriteString(w, b.String())
}
