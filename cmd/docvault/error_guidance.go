package main

import (
	"context"
	"errors"
	"net"

	"docvault/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "unauthorized", "forbidden":
			lines = append(lines, "hint: log in with: docvault login <username> --password-stdin, or verify DOCVAULT_API_TOKEN.")
		case "resource_exhausted":
			lines = append(lines, "hint: too many attempts; wait a few minutes and retry.")
		case "corrupt_payload":
			lines = append(lines, "hint: the payload could not be decoded; re-run submit from the original files.")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify DOCVAULT_API_URL points to a docvault server.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase DOCVAULT_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a docvault server is running at DOCVAULT_API_URL.",
			"hint: start local server manually with: docvault srv",
			"hint: you can increase DOCVAULT_HTTP_TIMEOUT for slower environments.",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
