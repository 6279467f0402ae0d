package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// flogger is what the workers log through
type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger tags every line with the worker it came from
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintf(format, v...))
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintln(v...))
}

// setupLogging points the standard logger at a rotating log file, and at
// stdout too when asked
func setupLogging(settings configSettings, stdout bool) (io.Closer, error) {
	logFile := settings.GetString(sLogFile)
	if logFile == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	// make sure we can write there before we commit to it
	if _, err := lj.Write([]byte{}); err != nil {
		return nil, err
	}

	if stdout {
		log.SetOutput(io.MultiWriter(os.Stdout, lj))
	} else {
		log.SetOutput(lj)
	}
	return lj, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
