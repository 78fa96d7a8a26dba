// Package schemas embeds the JSON Schemas for dataset and report documents.
package schemas

import (
	"embed"
)

//go:embed *.schema.json
var FS embed.FS

// File names within FS
const (
	DatasetSchemaFile = "dataset.schema.json"
	ReportSchemaFile  = "report.schema.json"
)

// Dataset returns the dataset document schema.
func Dataset() string {
	return mustRead(DatasetSchemaFile)
}

// Report returns the analytics report schema.
func Report() string {
	return mustRead(ReportSchemaFile)
}

func mustRead(name string) string {
	data, err := FS.ReadFile(name)
	if err != nil {
		// Files are embedded at build time
		panic(err)
	}
	return string(data)
}
