package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

func init() {
	Info = log.New(os.Stdout, "INFO: ", logFlags)
	Error = log.New(os.Stdout, "ERROR: ", logFlags)
	Debug = log.New(os.Stdout, "DEBUG: ", logFlags)
	Warn = log.New(os.Stdout, "WARN: ", logFlags)
}

// SetLevel silences every logger below level. Output goes to w, or stdout when w is nil.
func SetLevel(level string, w io.Writer) error {
	threshold, ok := levels[strings.ToLower(level)]
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	if w == nil {
		w = os.Stdout
	}

	for name, l := range map[string]*log.Logger{"debug": Debug, "info": Info, "warn": Warn, "error": Error} {
		if levels[name] < threshold {
			l.SetOutput(io.Discard)
		} else {
			l.SetOutput(w)
		}
	}
	return nil
}
