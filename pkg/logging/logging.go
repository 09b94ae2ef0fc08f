package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fastjson"
)

const mainPackage = "github.com/Slach/debug-log-viewer/"

var headerFields = map[string]bool{"time": true, "level": true, "message": true, "caller": true}

// prettyWriter turns zerolog JSON events into one readable text line each.
// String fields that span several lines are written as an indented block.
type prettyWriter struct {
	Out    io.Writer
	parser fastjson.Parser
}

func (w *prettyWriter) Write(p []byte) (int, error) {
	v, err := w.parser.ParseBytes(p)
	if err != nil || v.Type() != fastjson.TypeObject {
		return w.Out.Write(p)
	}
	obj, _ := v.Object()

	var out strings.Builder
	if ts := fieldString(v, "time"); ts != "" {
		out.WriteString(ts)
		out.WriteByte(' ')
	}
	if level := fieldString(v, "level"); level != "" {
		out.WriteString(strings.ToUpper(level))
		out.WriteByte(' ')
	}
	if caller := fieldString(v, "caller"); caller != "" {
		out.WriteString(caller)
		out.WriteString(" > ")
	}
	out.WriteString(fieldString(v, "message"))

	var keys []string
	obj.Visit(func(k []byte, _ *fastjson.Value) {
		if !headerFields[string(k)] {
			keys = append(keys, string(k))
		}
	})
	sort.Strings(keys)

	for _, k := range keys {
		field := v.Get(k)
		out.WriteByte(' ')
		out.WriteString(k)
		out.WriteByte('=')
		if field.Type() != fastjson.TypeString {
			out.Write(field.MarshalTo(nil))
			continue
		}
		s := strings.TrimSuffix(string(field.GetStringBytes()), "\n")
		if strings.Contains(s, "\n") {
			out.WriteByte('\n')
			out.WriteString(s)
			out.WriteByte('\n')
			continue
		}
		out.WriteString(s)
	}
	out.WriteByte('\n')

	if _, err := io.WriteString(w.Out, out.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// fieldString returns a string field, or the JSON text of any other value.
func fieldString(v *fastjson.Value, key string) string {
	field := v.Get(key)
	if field == nil {
		return ""
	}
	if field.Type() == fastjson.TypeString {
		return string(field.GetStringBytes())
	}
	return string(field.MarshalTo(nil))
}

func InitConsoleStdErrLog() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	// Errors created with pkg/errors log their innermost frame; anything else
	// gets a short stack captured at the logging call.
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if stackErr, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			st := stackErr.StackTrace()
			if len(st) > 0 {
				frame := fmt.Sprintf("%+v", st[0])
				parts := strings.Split(frame, "\n\t")
				if len(parts) >= 2 {
					return fmt.Sprintf("%s > %s", trimMain(parts[0]), trimMain(parts[1]))
				}
			}
		}

		const maxFrames = 10
		pcs := make([]uintptr, maxFrames)
		// runtime.Callers, this closure and the zerolog frame calling it
		n := runtime.Callers(3, pcs)
		if n == 0 {
			return nil
		}
		var b strings.Builder
		for _, pc := range pcs[:n] {
			fn := runtime.FuncForPC(pc - 1)
			if fn == nil {
				continue
			}
			file, line := fn.FileLine(pc - 1)
			_, _ = fmt.Fprintf(&b, "%s:%d > %s\n", trimMain(file), line, trimMain(fn.Name()))
		}
		if b.Len() == 0 {
			return nil
		}
		return b.String()
	}
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return trimMain(file) + ":" + strconv.Itoa(line)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Caller().
		Logger()
}

func trimMain(s string) string {
	if i := strings.Index(s, mainPackage); i >= 0 {
		return s[i+len(mainPackage):]
	}
	return s
}

// fatalStackHook adds stack traces to Fatal level logs
type fatalStackHook struct{}

func (h fatalStackHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.FatalLevel {
		e.Stack()
	}
}

// SetLevel applies --log-level; an empty value keeps info.
func SetLevel(level string) error {
	if level == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// DefaultLogPath is ~/.debug-log-viewer/debug-log-viewer.log.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, ".debug-log-viewer", "debug-log-viewer.log"), nil
}

// InitLogFile moves logging to a file, since the terminal UI owns the
// screen.
func InitLogFile(cliInstance *types.CLI, version string) error {
	logPath := ""
	if cliInstance != nil && cliInstance.LogPath != "" {
		logPath = cliInstance.LogPath
	}
	if logPath == "" {
		var err error
		if logPath, err = DefaultLogPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}

	log.Logger = newFileLogger(logFile, version)
	if cliInstance != nil {
		return SetLevel(cliInstance.LogLevel)
	}
	return nil
}

func newFileLogger(out io.Writer, version string) zerolog.Logger {
	return zerolog.New(zerolog.SyncWriter(&prettyWriter{Out: out})).
		With().
		Timestamp().
		Caller().
		Str("version", version).
		Logger().
		Hook(fatalStackHook{})
}
