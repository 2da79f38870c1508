package server

import (
	"fmt"
	"strings"

	"todod/internal/models"
)

func normalizeTitle(value string) (string, error) {
	title := strings.TrimSpace(value)
	if title == "" {
		return "", badRequestCode(fmt.Errorf("title is required"), ErrCodeMissingRequired)
	}
	return title, nil
}

func normalizeStatus(value string) (models.ItemStatus, error) {
	status, err := models.ParseItemStatus(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidStatus)
	}
	return status, nil
}

func normalizePriority(value string) (models.ItemPriority, error) {
	priority, err := models.ParseItemPriority(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidPriority)
	}
	return priority, nil
}

// normalizeTagName trims surrounding space. Case is kept: tag names are case-sensitive.
func normalizeTagName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", badRequestCode(fmt.Errorf("tag name is required"), ErrCodeMissingRequired)
	}
	if strings.ContainsAny(name, "\r\n\t") {
		return "", badRequestCode(fmt.Errorf("tag name must be a single line"), ErrCodeInvalidTagName)
	}
	return name, nil
}

func normalizeDueDate(value string) (models.Date, error) {
	date, err := models.NormalizeDate(value)
	if err != nil {
		return models.Date{}, badRequestCode(err, ErrCodeInvalidDueDate)
	}
	return date, nil
}

func normalizeSearchQuery(value string) (string, error) {
	query := strings.TrimSpace(value)
	if query == "" {
		return "", badRequestCode(fmt.Errorf("search query is required"), ErrCodeInvalidSearchQuery)
	}
	return query, nil
}
