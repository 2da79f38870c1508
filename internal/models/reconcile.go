package models

import "strings"

// ReconcileTags computes the difference between an item's current tags and the
// desired set. Desired tags are deduplicated by name and blank names are dropped.
// A desired tag matches a current one when the ids are set and equal, or when
// the names are equal.
func ReconcileTags(current, desired []Tag) (toAdd, toRemove []Tag) {
	wanted := make([]Tag, 0, len(desired))
	seen := make(map[string]struct{}, len(desired))
	for _, tag := range desired {
		tag.Name = strings.TrimSpace(tag.Name)
		if tag.Name == "" {
			continue
		}
		if _, ok := seen[tag.Name]; ok {
			continue
		}
		seen[tag.Name] = struct{}{}
		wanted = append(wanted, tag)
	}

	toAdd = []Tag{}
	for _, tag := range wanted {
		if !containsTag(current, tag) {
			toAdd = append(toAdd, tag)
		}
	}
	toRemove = []Tag{}
	for _, tag := range current {
		if !containsTag(wanted, tag) {
			toRemove = append(toRemove, tag)
		}
	}
	return toAdd, toRemove
}

func containsTag(tags []Tag, target Tag) bool {
	for _, tag := range tags {
		if sameTag(tag, target) {
			return true
		}
	}
	return false
}

// sameTag matches on equal non-zero ids or on equal names. Names are unique.
func sameTag(a, b Tag) bool {
	if a.ID != 0 && a.ID == b.ID {
		return true
	}
	return a.Name == b.Name
}
