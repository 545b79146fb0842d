// Package experts implements the Experts (C2) — Spot, Hotel, Food,
// Itinerary, Cost Calculator, General Info — plus the shared budget parser
// and the Expert Dispatcher that wires task parameters to each one (§4.4).
// Grounded file-by-file on original_source's per-expert modules.
package experts

import (
	"regexp"
	"strings"
)

// vietnameseCharMap strips diacritics for slug generation, ported from
// base_expert.py's char_map (shared by _normalize_location and _make_slug).
var vietnameseCharMap = map[rune]rune{
	'à': 'a', 'á': 'a', 'ả': 'a', 'ã': 'a', 'ạ': 'a',
	'ă': 'a', 'ằ': 'a', 'ắ': 'a', 'ẳ': 'a', 'ẵ': 'a', 'ặ': 'a',
	'â': 'a', 'ầ': 'a', 'ấ': 'a', 'ẩ': 'a', 'ẫ': 'a', 'ậ': 'a',
	'đ': 'd',
	'è': 'e', 'é': 'e', 'ẻ': 'e', 'ẽ': 'e', 'ẹ': 'e',
	'ê': 'e', 'ề': 'e', 'ế': 'e', 'ể': 'e', 'ễ': 'e', 'ệ': 'e',
	'ì': 'i', 'í': 'i', 'ỉ': 'i', 'ĩ': 'i', 'ị': 'i',
	'ò': 'o', 'ó': 'o', 'ỏ': 'o', 'õ': 'o', 'ọ': 'o',
	'ô': 'o', 'ồ': 'o', 'ố': 'o', 'ổ': 'o', 'ỗ': 'o', 'ộ': 'o',
	'ơ': 'o', 'ờ': 'o', 'ớ': 'o', 'ở': 'o', 'ỡ': 'o', 'ợ': 'o',
	'ù': 'u', 'ú': 'u', 'ủ': 'u', 'ũ': 'u', 'ụ': 'u',
	'ư': 'u', 'ừ': 'u', 'ứ': 'u', 'ử': 'u', 'ữ': 'u', 'ự': 'u',
	'ỳ': 'y', 'ý': 'y', 'ỷ': 'y', 'ỹ': 'y', 'ỵ': 'y',
}

// provinceAliases maps a tourist-facing location slug to the province_id
// key actually used in the document store (§4.4.1's "province-alias
// table"), ported verbatim from base_expert.py's PROVINCE_ALIASES.
var provinceAliases = map[string]string{
	"sa-pa":       "lao-cai",
	"sapa":        "lao-cai",
	"sa pa":       "lao-cai",
	"phu-quoc":    "kien-giang",
	"hue":         "thua-thien-hue",
	"nha-trang":   "khanh-hoa",
	"da-lat":      "lam-dong",
	"dalat":       "lam-dong",
	"hoi-an":      "quang-nam",
	"hoian":       "quang-nam",
	"phan-thiet":  "binh-thuan",
	"vung-tau":    "ba-ria-vung-tau",
	"ha-long":     "quang-ninh",
	"halong":      "quang-ninh",
	"mui-ne":      "binh-thuan",
	"cat-ba":      "hai-phong",
}

// locationCoords is the geo-fallback gazetteer (§4.4.2 "geo-fallback... if
// the location has known coordinates"), ported from
// base_expert.py's LOCATION_COORDS.
var locationCoords = map[string][2]float64{
	"hoi-an":      {15.8794, 108.3350},
	"hue":         {16.4637, 107.5909},
	"da-nang":     {16.0544, 108.2022},
	"nha-trang":   {12.2388, 109.1967},
	"da-lat":      {11.9404, 108.4583},
	"phu-quoc":    {10.2276, 103.9632},
	"sa-pa":       {22.3364, 103.8438},
	"ha-long":     {20.9511, 107.0807},
	"phan-thiet":  {10.9289, 108.1028},
	"vung-tau":    {10.3460, 107.0843},
	"ha-noi":      {21.0285, 105.8542},
	"ho-chi-minh": {10.8231, 106.6297},
}

var locationSuffixPattern = regexp.MustCompile(`(?i)\s*(tỉnh|thành phố|tp\.?)\s*`)
var nonSlugCharPattern = regexp.MustCompile(`[^a-z0-9-]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// normalizeLocation turns free-text destination input into the province_id
// slug the document store keys on, applying the alias table last so e.g.
// "Sa Pa" resolves to "lao-cai" (§4.4.1 "normalize location via the
// province-alias table").
func normalizeLocation(location string) string {
	if location == "" {
		return ""
	}

	stripped := locationSuffixPattern.ReplaceAllString(location, "")
	slug := strings.ToLower(strings.TrimSpace(stripped))
	slug = stripDiacritics(slug)
	slug = whitespacePattern.ReplaceAllString(slug, "-")
	slug = nonSlugCharPattern.ReplaceAllString(slug, "")

	if alias, ok := provinceAliases[slug]; ok {
		return alias
	}
	return slug
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if mapped, ok := vietnameseCharMap[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// coordsFor returns the gazetteer coordinates for a raw (not yet
// normalized) location string, trying both the slug and its resolved
// province_id the way hotel_expert.py's execute() re-slugs the original
// location string for the geo-fallback lookup.
func coordsFor(location string) (lat, lng float64, ok bool) {
	slug := stripDiacritics(strings.ToLower(strings.TrimSpace(location)))
	slug = whitespacePattern.ReplaceAllString(slug, "-")
	slug = nonSlugCharPattern.ReplaceAllString(slug, "")

	if c, ok := locationCoords[slug]; ok {
		return c[0], c[1], true
	}
	if c, ok := locationCoords[normalizeLocation(location)]; ok {
		return c[0], c[1], true
	}
	return 0, 0, false
}

// stringsFromAny coerces a loosely-typed parameter value (string,
// []string, or []any of strings) into a []string, since SubTask.Parameters
// is a map[string]any built by the planner and the LLM-derived intent
// extractor.
func stringsFromAny(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func float64Param(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
