package vkobj

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var (
	infoLog  = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	warnLog  = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// SetLogOutput redirects the info, warning and error loggers to w.
func SetLogOutput(w io.Writer) {
	infoLog.SetOutput(w)
	warnLog.SetOutput(w)
	errorLog.SetOutput(w)
}

// SetLoggers replaces the package loggers. Nil arguments keep the current one.
func SetLoggers(info, warn, errl *log.Logger) {
	if info != nil {
		infoLog = info
	}
	if warn != nil {
		warnLog = warn
	}
	if errl != nil {
		errorLog = errl
	}
}

// LogFiles are the per-level log files opened by OpenLogFiles.
type LogFiles struct {
	files []*os.File
}

// OpenLogFiles appends the info, warning and error logs to info_log.txt,
// warn_log.txt and error_log.txt in dir.
func OpenLogFiles(dir string) (*LogFiles, error) {
	lf := &LogFiles{}
	var loggers [3]*log.Logger
	for i, level := range []struct{ file, prefix string }{
		{"info_log.txt", "INFO: "},
		{"warn_log.txt", "WARNING: "},
		{"error_log.txt", "ERROR: "},
	} {
		f, err := os.OpenFile(filepath.Join(dir, level.file), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			lf.Close()
			return nil, errors.Wrap(err, "vulkan: opening log file")
		}
		lf.files = append(lf.files, f)
		loggers[i] = log.New(f, level.prefix, log.Ldate|log.Ltime|log.Lshortfile)
	}
	SetLoggers(loggers[0], loggers[1], loggers[2])
	return lf, nil
}

// Close closes the files. Loggers keep pointing at them; redirect them first.
func (lf *LogFiles) Close() error {
	var first error
	for _, f := range lf.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	lf.files = nil
	return first
}
