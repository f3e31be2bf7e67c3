package main

import (
	"os"
	"time"
)

var logFile *os.File

// setLogFile enables mirroring log output to a file in addition to stderr
func setLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

func logMsg(message string) {
	line := time.Now().Format("2006-01-02 15:04:05.999") + " - " + message + "\n"
	os.Stderr.WriteString(line)
	if logFile != nil {
		logFile.WriteString(line)
	}
}
