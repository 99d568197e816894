package utils

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2/log"
)

// SetupLogger sends application logs to stderr and, when path is set, to an
// append-only log file. The returned closer releases the file.
func SetupLogger(path string, production bool) (io.Closer, error) {
	if production {
		log.SetLevel(log.LevelInfo)
	} else {
		log.SetLevel(log.LevelDebug)
	}

	if path == "" {
		return io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file, nil
}
