package storage

import (
	"path/filepath"
	"strings"
)

const (
	sourceExtension = ".txt"
	sourcePrefix    = "consulta_"
	reportPrefix    = "report_"
	reportExtension = ".json"
)

// Identity maps a raw export file name to its report identity by dropping the
// ".txt" extension and the "consulta_" prefix wherever they occur.
func Identity(source string) string {
	name := filepath.Base(source)
	name = strings.ReplaceAll(name, sourceExtension, "")
	return strings.ReplaceAll(name, sourcePrefix, "")
}

// FileName is the report log file name for a source.
func FileName(source string) string {
	return reportPrefix + Identity(source) + reportExtension
}
