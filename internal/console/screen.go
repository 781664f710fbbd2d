package console

import (
	"fmt"
	"io"
	"sync"
)

// Screen serializes writes from the session loop and from delayed chat replies.
type Screen struct {
	mu  sync.Mutex
	out io.Writer
}

func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out}
}

func (s *Screen) Println(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.out, text)
}
