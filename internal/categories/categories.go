// Package categories maintains the two category vocabularies offered to
// users as dropdown values: the raw taxonomy names and the personal-finance
// group names.
package categories

import (
	"context"
	"fmt"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/props"
)

// Group names that transactions carry but the public taxonomy omits.
var extraGroups = []string{"Other", "Income"}

// Refresh fetches the public category taxonomy and caches both vocabularies
// in the property store. Names keep their first-seen order and are deduped;
// the group vocabulary always includes Other and Income.
func Refresh(ctx context.Context, api centapi.Service, store *props.Store) (nzfcc, pfm []string, err error) {
	log := logger.FromContext(ctx)

	entries, err := api.FetchCategoryTaxonomy(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("Refresh: fetching taxonomy: %w", err)
	}

	names := make([]string, 0, len(entries))
	groups := make([]string, 0, 16)
	seenName := make(map[string]bool, len(entries))
	seenGroup := make(map[string]bool, 16)

	for _, e := range entries {
		if e.Name != "" && !seenName[e.Name] {
			seenName[e.Name] = true
			names = append(names, e.Name)
		}
		if g := e.GroupName(); g != "" && !seenGroup[g] {
			seenGroup[g] = true
			groups = append(groups, g)
		}
	}
	for _, g := range extraGroups {
		if !seenGroup[g] {
			seenGroup[g] = true
			groups = append(groups, g)
		}
	}

	if err := store.SetCategoryVocabularies(names, groups); err != nil {
		return nil, nil, fmt.Errorf("Refresh: caching vocabularies: %w", err)
	}
	log.Info().Int("categories", len(names)).Int("groups", len(groups)).Msg("Category vocabularies refreshed")
	return names, groups, nil
}
