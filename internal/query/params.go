// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package query

import (
	"strconv"
	"strings"
	"time"
)

// Params is the raw request parameter bag, one or more values per key.
// It mirrors url.Values without tying the package to net/http.
type Params map[string][]string

// Recognized parameter keys. Anything else is ignored.
const (
	paramSearch            = "search"
	paramPlatforms         = "platforms"
	paramParentPlatforms   = "parent_platforms"
	paramStores            = "stores"
	paramGenres            = "genres"
	paramCreators          = "creators"
	paramDates             = "dates"
	paramMetacritic        = "metacritic"
	paramOrdering          = "ordering"
	paramExcludeCollection = "exclude_collection"
	paramExcludeAdditions  = "exclude_additions"
	paramExcludeParents    = "exclude_parents"
	paramExcludeSeries     = "exclude_game_series"
	paramExcludeStores     = "exclude_stores"
)

const dateLayout = "2006-01-02"

// ParseParams builds a FilterSpec from raw parameters. It is a pure
// function: malformed values are skipped individually and never raise.
// Repeated keys are merged (e.g. platforms=4&platforms=5,6 selects 4, 5
// and 6).
func ParseParams(params Params) FilterSpec {
	spec := FilterSpec{Order: DefaultOrdering()}

	if v := first(params, paramSearch); v != "" {
		spec.Search = strings.TrimSpace(v)
	}

	spec.PlatformIDs = parseIDList(params[paramPlatforms])
	spec.ParentPlatformIDs = parseIDList(params[paramParentPlatforms])
	spec.StoreIDs = parseIDList(params[paramStores])
	spec.GenreIDs = parseIDList(params[paramGenres])
	spec.CreatorIDs = parseIDList(params[paramCreators])
	spec.ExcludeStores = parseIDList(params[paramExcludeStores])

	spec.DateRanges = parseDateRanges(first(params, paramDates))
	spec.Metacritic = parseIntRange(first(params, paramMetacritic))

	if id, err := strconv.ParseInt(first(params, paramExcludeCollection), 10, 64); err == nil && id > 0 {
		spec.ExcludeCollection = id
	}
	spec.ExcludeAdditions = parseBool(first(params, paramExcludeAdditions))
	spec.ExcludeParents = parseBool(first(params, paramExcludeParents))
	spec.ExcludeGameSeries = parseBool(first(params, paramExcludeSeries))

	if raw := first(params, paramOrdering); raw != "" {
		spec.Order = ParseOrdering(raw)
	}

	return spec
}

// first returns the first value for key, or "".
func first(params Params, key string) string {
	if vs := params[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// parseIDList parses comma-separated integer lists across all values of a
// repeated key. Non-numeric and non-positive entries are dropped.
func parseIDList(values []string) []int64 {
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				continue
			}
			ids = append(ids, id)
		}
	}
	return ids
}

// parseDateRanges parses one or more "from,to" pairs joined by ".", e.g.
// "2010-01-01,2015-12-31.2017-01-01,2017-12-31". Invalid pairs are skipped
// individually rather than invalidating the whole filter.
func parseDateRanges(raw string) []DateRange {
	if raw == "" {
		return nil
	}
	var ranges []DateRange
	for _, pair := range strings.Split(raw, ".") {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			continue
		}
		from, err := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		to, err := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		if to.Before(from) {
			continue
		}
		ranges = append(ranges, DateRange{From: from, To: to})
	}
	return ranges
}

// parseIntRange parses "min,max" (e.g. "80,100"). A single value is
// treated as both bounds. Malformed input yields nil.
func parseIntRange(raw string) *IntRange {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	switch len(parts) {
	case 1:
		v, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil
		}
		return &IntRange{Min: v, Max: v}
	case 2:
		minV, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil
		}
		maxV, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil
		}
		if maxV < minV {
			return nil
		}
		return &IntRange{Min: minV, Max: maxV}
	default:
		return nil
	}
}

// parseBool accepts "true"/"1" (and their upper-case forms) as true;
// everything else, including malformed values, is false.
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true
	default:
		return false
	}
}
