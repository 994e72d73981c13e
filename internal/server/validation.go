package server

import (
	"fmt"
	"regexp"
	"strings"

	"docvault/internal/models"
)

// Document ids are v4 UUIDs minted at submission time.
var documentIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

const maxDocumentNameLength = 256

func validateDocumentID(id string) bool {
	return documentIDRegex.MatchString(strings.ToLower(id))
}

func normalizeDocumentName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", badRequestCode(fmt.Errorf("name is required"), ErrCodeEmptyName)
	}
	if len(name) > maxDocumentNameLength {
		return "", badRequestCode(fmt.Errorf("name too long"), ErrCodeInvalidArgument)
	}
	return name, nil
}

func normalizeDocumentKind(value string) (models.DocumentKind, error) {
	kind, err := models.ParseDocumentKind(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidKind)
	}
	return kind, nil
}
