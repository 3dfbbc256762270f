package console

import (
	"fmt"
	"io"
	"sync"
)

// Document holds the page title of a terminal session. When an output is
// set every title change is printed, the way a browser tab shows it.
type Document struct {
	mu    sync.Mutex
	title string
	out   io.Writer
}

func NewDocument(out io.Writer) *Document {
	return &Document{out: out}
}

func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if title == d.title {
		return
	}
	d.title = title
	if d.out != nil {
		fmt.Fprintf(d.out, "\033]0;%s\007", title)
	}
}

func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}
