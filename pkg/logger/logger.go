package logger

import (
	"log"
	"os"
	"strings"
)

// Logger é a interface para logging estruturado em pares chave/valor
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SimpleLogger escreve em stdout/stderr com prefixo de nível.
// Debug só é emitido quando LOG_DEBUG=true.
type SimpleLogger struct {
	out   *log.Logger
	err   *log.Logger
	debug bool
}

// NewLogger cria uma nova instância de Logger
func NewLogger() Logger {
	return &SimpleLogger{
		out:   log.New(os.Stdout, "", log.Ldate|log.Ltime),
		err:   log.New(os.Stderr, "", log.Ldate|log.Ltime),
		debug: strings.EqualFold(os.Getenv("LOG_DEBUG"), "true"),
	}
}

func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.out.Printf("INFO: "+msg+formatPairs(keysAndValues), keysAndValues...)
}

func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.err.Printf("ERROR: "+msg+formatPairs(keysAndValues), keysAndValues...)
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.out.Printf("DEBUG: "+msg+formatPairs(keysAndValues), keysAndValues...)
}

func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.out.Printf("WARN: "+msg+formatPairs(keysAndValues), keysAndValues...)
}

// formatPairs monta " chave=valor" para cada par passado; um valor sem
// chave correspondente é impresso sozinho.
func formatPairs(keysAndValues []interface{}) string {
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			b.WriteString(" %v=%v")
		} else {
			b.WriteString(" %v")
		}
	}
	return b.String()
}
