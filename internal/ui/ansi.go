package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/Makepad-fr/todolist/internal/notify"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgBlack  = "\033[30m"
	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
	fgCyan   = "\033[36m"

	symCheck = "✔"
	symCross = "✖"
	symWarn  = "!"
	symInfo  = "•"
)

// Out and Err are where the helpers below print.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	f, ok := Out.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in color when output is a terminal or color is forced.
func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(Out, C(current.Success, symCheck+" "+msg)) }
func Warn(msg string) { fmt.Fprintln(Err, C(current.Pending, symWarn+" "+msg)) }
func Info(msg string) { fmt.Fprintln(Out, C(current.Muted, symInfo+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Err, C(current.Error, symCross+" "+msg)) }

// Notifier prints notices with the helpers above.
func Notifier() notify.Sink {
	return notify.Func(func(n notify.Notice) {
		switch n.Level {
		case notify.Success:
			OK(n.Message)
		case notify.Warning:
			Warn(n.Message)
		case notify.Error:
			Fail(n.Message)
		default:
			Info(n.Message)
		}
	})
}
