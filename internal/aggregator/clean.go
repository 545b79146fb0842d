package aggregator

import (
	"fmt"
)

const defaultSpotImage = "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=400"
const defaultHotelImage = "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400"

var nonSerializableFields = []string{"embedding", "vector", "embeddings", "_id"}

// CleanSpot enriches a spot record for display: rating normalized to a 0-5
// scale with a display string, description truncated to 150 chars, and an
// image fallback (response_aggregator.py's _clean_spot_data).
func CleanSpot(spot map[string]any) map[string]any {
	cleaned := copyRecord(spot)

	rating, display := normalizeRating(cleaned["rating"])
	cleaned["rating"] = rating
	cleaned["rating_display"] = display

	desc := firstNonEmpty(cleaned["description_short"], cleaned["description"], truncateAny(cleaned["description_full"], 300))
	cleaned["description"] = truncateDisplay(desc, 150)

	if tags, ok := cleaned["tags"].(string); ok {
		cleaned["tags"] = []string{tags}
	}

	if loc, ok := cleaned["location"].(string); ok && loc != "" {
		cleaned["location_short"] = truncateString(loc, 50)
	}

	if cleaned["image"] == nil || cleaned["image"] == "" {
		cleaned["image"] = defaultSpotImage
	}

	return cleaned
}

// CleanHotel enriches a hotel record for display: rating normalized from a
// possible 0-10 scale, a priceRange display string, and an image fallback
// that checks image_url first (response_aggregator.py's _clean_hotel_data).
func CleanHotel(hotel map[string]any) map[string]any {
	cleaned := copyRecord(hotel)

	rating, display := normalizeRating(cleaned["rating"])
	cleaned["rating"] = rating
	cleaned["rating_display"] = display

	if price, ok := toInt64(cleaned["price"]); ok && price > 0 {
		cleaned["price_display"] = fmt.Sprintf("%s đ", formatThousands(price))
		if cleaned["priceRange"] == nil || cleaned["priceRange"] == "" {
			if pf, ok := cleaned["price_formatted"].(string); ok && pf != "" {
				cleaned["priceRange"] = pf
			} else {
				cleaned["priceRange"] = fmt.Sprintf("%s VNĐ/đêm", formatThousands(price))
			}
		}
	} else {
		delete(cleaned, "price")
	}

	if cleaned["priceRange"] == nil || cleaned["priceRange"] == "" {
		if pf, ok := cleaned["price_formatted"].(string); ok && pf != "" {
			cleaned["priceRange"] = pf
		} else {
			cleaned["priceRange"] = "Liên hệ"
		}
	}

	if cleaned["image"] == nil || cleaned["image"] == "" {
		if url, ok := cleaned["image_url"].(string); ok && url != "" {
			cleaned["image"] = url
		} else {
			cleaned["image"] = defaultHotelImage
		}
	}

	return cleaned
}

func copyRecord(record map[string]any) map[string]any {
	cleaned := make(map[string]any, len(record))
	for k, v := range record {
		cleaned[k] = v
	}
	for _, f := range nonSerializableFields {
		delete(cleaned, f)
	}
	return cleaned
}

// normalizeRating converts a raw rating (possibly on a 0-10 scale) to a
// 0-5 scale plus a display string, or reports "no rating" for zero/empty.
func normalizeRating(raw any) (any, string) {
	f, ok := toFloat64(raw)
	if !ok || f == 0 {
		return nil, "Chưa có đánh giá"
	}
	if f > 5 {
		f = f / 2
	}
	f = round1Float(f)
	return f, fmt.Sprintf("⭐ %.1f/5", f)
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	}
	return 0, false
}

func round1Float(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

func firstNonEmpty(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func truncateAny(v any, n int) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return truncateString(s, n)
}

func truncateDisplay(desc string, n int) string {
	r := []rune(desc)
	if len(r) <= n {
		return desc
	}
	return string(r[:n-3]) + "..."
}

func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// formatThousands renders an integer with thousands separators, matching
// the teacher-domain convention used throughout the experts package.
func formatThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
