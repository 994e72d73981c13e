package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"docvault/internal/api"
	"docvault/internal/format"
)

// structured writes payload in the selected machine format. The second
// return value is false when no structured format was requested and the
// caller should write plain output instead.
func (o *outputFlags) structured(payload any) (bool, error) {
	var formatter format.Formatter
	switch {
	case o == nil:
		return false, nil
	case o.json:
		formatter = format.JSONFormatter{}
	case o.yaml:
		formatter = format.YAMLFormatter{}
	default:
		return false, nil
	}
	return true, formatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeDocumentTable(docs []api.DocumentResponse) error {
	if len(docs) == 0 {
		return writePlain("no documents\n")
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "NAME", "TYPE", "CREATED", "SIZE"})
	for _, doc := range docs {
		tw.AppendRow(table.Row{doc.ID, doc.Name, doc.Type, doc.CreatedAtDisplay, formatSize(doc.SizeBytes)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return writePlain("%s\n", tw.Render())
}

func writeDocumentDetail(doc api.DocumentResponse) error {
	lines := []string{
		fmt.Sprintf("id: %s", doc.ID),
		fmt.Sprintf("name: %s", doc.Name),
		fmt.Sprintf("type: %s", doc.Type),
	}
	if doc.URL != "" {
		lines = append(lines, fmt.Sprintf("url: %s", doc.URL))
	}
	if doc.CreatedAt != "" {
		lines = append(lines, fmt.Sprintf("created_at: %s", doc.CreatedAt))
	}
	if doc.SizeBytes > 0 {
		lines = append(lines, fmt.Sprintf("size_bytes: %d", doc.SizeBytes))
	}
	if doc.StorageExtension != "" {
		lines = append(lines, fmt.Sprintf("storage_extension: %s", doc.StorageExtension))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatSize(size int64) string {
	if size <= 0 {
		return "-"
	}
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
