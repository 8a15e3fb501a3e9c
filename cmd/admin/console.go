package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Lelo88/monument-catalog/internal/admin"
)

// console muestra avisos y hace la pregunta de confirmación por terminal.
type console struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newConsole(in io.Reader, out io.Writer, assumeYes bool) *console {
	return &console{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (c *console) Notify(notification admin.Notification) {
	fmt.Fprintf(c.out, "%s %s\n", notification.Title, notification.Description)
}

func (c *console) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}

	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}
