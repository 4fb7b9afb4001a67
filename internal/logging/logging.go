package logging

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// Formatter renders entries as "time level event_id message key=value ...".
// Each entry carries a unique event ID so a line can be referenced exactly.
type Formatter struct{}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	b.WriteString(" ")
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString(" ")
	b.WriteString(uuid.New().String())
	b.WriteString(" ")
	b.WriteString(entry.Message)

	for k, v := range entry.Data {
		b.WriteString(fmt.Sprintf(" %s=%v", k, v))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Init configures the shared logger. When logFile is non-empty, output goes to
// a size-rotated file; otherwise it stays on stdout.
func Init(logFile string) {
	if logFile != "" {
		Logger.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	Logger.SetFormatter(&Formatter{})
	Logger.SetLevel(logrus.InfoLevel)
}
