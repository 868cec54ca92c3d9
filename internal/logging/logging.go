/*
Package logging builds the run logger: console output plus an append-managed
plain-text log file beside the run's other artifacts.
*/
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const logFileName = "logs.txt"

// New returns a logger writing to the console and to logs.txt under dir.
// If the directory cannot be created the file writer is skipped with a
// console warning rather than failing the run.
func New(dir, level string) arbor.ILogger {
	logger := arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		OutputType:       models.OutputFormatLogfmt,
		DisableTimestamp: false,
	})

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Warning: failed to create output directory %s: %v\n", dir, err)
	} else {
		logger = logger.WithFileWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeFile,
			FileName:         filepath.Join(dir, logFileName),
			TimeFormat:       "15:04:05",
			MaxSize:          100 * 1024 * 1024, // 100 MB
			MaxBackups:       3,
			OutputType:       models.OutputFormatLogfmt,
			DisableTimestamp: false,
		})
	}

	return logger.WithLevelFromString(level)
}
