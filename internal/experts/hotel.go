package experts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"travelcore/internal/coretypes"
	"travelcore/internal/docstore"
	"travelcore/internal/geo"
	"travelcore/internal/hybridsearch"
)

// hotelBudgetRanges maps a coarse budget level to a (min, max) VNĐ-per-night
// price band, ported verbatim from hotel_expert.py's BUDGET_RANGES.
var hotelBudgetRanges = map[coretypes.BudgetLevel][2]int64{
	coretypes.BudgetThrifty: {0, 800_000},
	coretypes.BudgetMid:     {500_000, 2_500_000},
	coretypes.BudgetLuxury:  {2_000_000, 50_000_000},
}

const defaultHotelLimit = 5
const hotelGeoRadiusKm = 30
const hybridSearchThreshold = 0.3

// HotelExpert finds hotels/accommodations, cascading hybrid search → Mongo
// keyword search → geo bounding-box fallback (§4.4.2).
type HotelExpert struct {
	Store  docstore.Store
	Search hybridsearch.Client
}

func (e *HotelExpert) ExpertType() string { return "hotel_expert" }

func (e *HotelExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	start := time.Now()

	location := stringParam(params, "location")
	budget := int64(float64Param(params, "budget"))
	budgetLevel := coretypes.BudgetLevel(stringParam(params, "budget_level"))
	keywords := stringsFromAny(params["keywords"])
	limit := intParam(params, "limit", defaultHotelLimit)

	provinceID := normalizeLocation(location)
	minPrice, maxPrice := hotelPriceRange(budget, budgetLevel)

	if e.Search != nil {
		records, err := e.Search.SearchHotels(ctx, query, provinceID, limit, hybridSearchThreshold, float64(minPrice), float64(maxPrice))
		if err == nil && len(records) > 0 {
			return &coretypes.ExpertResult{
				ExpertType:      e.ExpertType(),
				Success:         true,
				Data:            recordsToMaps(records),
				ExecutionTimeMs: time.Since(start).Milliseconds(),
				Metadata:        map[string]any{"count": len(records), "source": "hybrid_search"},
			}
		}
	}

	results := e.searchMongo(ctx, provinceID, minPrice, maxPrice, keywords, query, limit)

	if len(results) == 0 && location != "" {
		if lat, lng, ok := coordsFor(location); ok {
			results = e.searchGeo(ctx, lat, lng, hotelGeoRadiusKm, minPrice, maxPrice, limit)
		}
	}

	return &coretypes.ExpertResult{
		ExpertType:      e.ExpertType(),
		Success:         true,
		Data:            results,
		Summary:         hotelSummary(results, location, budgetLevel),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}
}

// hotelPriceRange resolves a min/max per-night price band: budget_level
// table first, else 30% of total budget as the per-night cap, else the
// full range (§4.4.2).
func hotelPriceRange(budget int64, budgetLevel coretypes.BudgetLevel) (int64, int64) {
	if r, ok := hotelBudgetRanges[budgetLevel]; ok {
		return r[0], r[1]
	}
	if budget > 0 {
		return 0, int64(float64(budget) * 0.3)
	}
	return 0, 50_000_000
}

func (e *HotelExpert) searchMongo(ctx context.Context, provinceID string, minPrice, maxPrice int64, keywords []string, query string, limit int) []map[string]any {
	if e.Store == nil {
		return nil
	}
	coll := e.Store.Collection("hotels")

	filter := bson.M{"price": bson.M{"$gte": minPrice, "$lte": maxPrice}}
	if provinceID != "" {
		filter["province_id"] = provinceID
	}

	if or := keywordOrClauses(keywords, query, []string{"khách", "sạn", "hotel", "tìm", "ở", "đâu"}, "name", "facilities", "address"); len(or) > 0 {
		filter["$or"] = or
	}

	cur, err := coll.Find(ctx, filter, docstore.WithSort(bson.D{{Key: "rating", Value: -1}, {Key: "price", Value: 1}}), docstore.WithLimit(int64(limit*2)))
	if err != nil {
		return nil
	}
	defer cur.Close(ctx)

	var results []map[string]any
	for cur.Next(ctx) && len(results) < limit {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		results = append(results, hotelRecordFromDoc(doc))
	}
	return results
}

func (e *HotelExpert) searchGeo(ctx context.Context, lat, lng, radiusKm float64, minPrice, maxPrice int64, limit int) []map[string]any {
	if e.Store == nil {
		return nil
	}
	coll := e.Store.Collection("hotels")

	minLat, maxLat, minLng, maxLng := geo.BoundingBox(lat, lng, radiusKm)
	filter := bson.M{
		"latitude":  bson.M{"$gte": minLat, "$lte": maxLat},
		"longitude": bson.M{"$gte": minLng, "$lte": maxLng},
		"price":     bson.M{"$gte": minPrice, "$lte": maxPrice},
	}

	cur, err := coll.Find(ctx, filter, docstore.WithLimit(int64(limit*3)))
	if err != nil {
		return nil
	}
	defer cur.Close(ctx)

	var candidates []geoCandidate
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		docLat, latOK := doc["latitude"].(float64)
		docLng, lngOK := doc["longitude"].(float64)
		if !latOK || !lngOK {
			continue
		}
		distance := geo.HaversineKm(lat, lng, docLat, docLng)
		if distance > radiusKm {
			continue
		}
		record := hotelRecordFromDoc(doc)
		record["distance_km"] = round1(distance)
		record["source"] = "mongodb_geo"
		rating, _ := doc["rating"].(float64)
		candidates = append(candidates, geoCandidate{record: record, distance: distance, rating: rating})
	}

	// Insertion sort by (distance asc, rating desc) — ports
	// hotel_expert.py's results.sort(key=lambda x: (distance, -rating)).
	for i := 1; i < len(candidates); i++ {
		j := i
		for j > 0 && candidateLess(candidates[j], candidates[j-1]) {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
			j--
		}
	}

	out := make([]map[string]any, 0, limit)
	for i, c := range candidates {
		if i >= limit {
			break
		}
		out = append(out, c.record)
	}
	return out
}

func hotelRecordFromDoc(doc bson.M) map[string]any {
	price, _ := doc["price"].(int64)
	if price == 0 {
		if f, ok := doc["price"].(float64); ok {
			price = int64(f)
		}
	}
	image, _ := doc["image_url"].(string)
	if image == "" {
		image, _ = doc["image"].(string)
	}
	return map[string]any{
		"id":             fmt.Sprint(doc["_id"]),
		"name":           doc["name"],
		"province_id":    doc["province_id"],
		"address":        stringOr(doc["address"], ""),
		"price":          price,
		"price_formatted": fmt.Sprintf("%s VNĐ/đêm", formatThousands(price)),
		"rating":         doc["rating"],
		"facilities":     stringOr(doc["facilities"], ""),
		"image":          image,
		"latitude":       doc["latitude"],
		"longitude":      doc["longitude"],
		"source":         "mongodb",
	}
}

func recordsToMaps(records []hybridsearch.ScoredRecord) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, r := range records {
		out[i] = r.Data
	}
	return out
}

func hotelSummary(results []map[string]any, location string, budgetLevel coretypes.BudgetLevel) string {
	loc := location
	if loc == "" {
		loc = "khu vực này"
	}
	if len(results) == 0 {
		return fmt.Sprintf("Không tìm thấy khách sạn phù hợp ở %s", loc)
	}

	var total int64
	for _, r := range results {
		if p, ok := r["price"].(int64); ok {
			total += p
		}
	}
	avg := total / int64(len(results))

	budgetText := ""
	if budgetLevel != "" {
		budgetText = fmt.Sprintf(" (%s)", budgetLevel)
	}

	topNames := []string{}
	for i, r := range results {
		if i >= 2 {
			break
		}
		if name, ok := r["name"].(string); ok {
			topNames = append(topNames, name)
		}
	}

	return fmt.Sprintf("Tìm thấy %d khách sạn%s tại %s. Giá trung bình: %s VNĐ/đêm. Gợi ý: %s",
		len(results), budgetText, loc, formatThousands(avg), joinWithComma(topNames))
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

// geoCandidate is one geo-fallback hit awaiting (distance, -rating) sort.
type geoCandidate struct {
	record   map[string]any
	distance float64
	rating   float64
}

func candidateLess(a, b geoCandidate) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	return a.rating > b.rating
}

func joinWithComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// formatThousands renders an integer VNĐ amount with thousands separators,
// matching Python's f"{x:,.0f}" display convention used throughout the
// original experts.
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

// keywordOrClauses builds a Mongo $or of case-insensitive regex matches
// across fields, either from explicit keywords or from "important words"
// extracted from the free-text query (words longer than 2 chars, minus a
// stopword list) — ported from hotel_expert.py's _search_mongo fallback.
func keywordOrClauses(keywords []string, query string, stopwords []string, fields ...string) []bson.M {
	terms := keywords
	if len(terms) == 0 {
		terms = importantWords(query, stopwords)
	}
	if len(terms) == 0 {
		return nil
	}

	var or []bson.M
	for _, term := range terms {
		for _, field := range fields {
			or = append(or, bson.M{field: bson.M{"$regex": term, "$options": "i"}})
		}
	}
	return or
}

func importantWords(query string, stopwords []string) []string {
	stop := map[string]bool{}
	for _, w := range stopwords {
		stop[w] = true
	}

	var out []string
	word := ""
	flush := func() {
		if len([]rune(word)) > 2 && !stop[word] {
			out = append(out, word)
		}
		word = ""
	}
	for _, r := range []rune(strings.ToLower(query)) {
		if r == ' ' {
			flush()
			continue
		}
		word += string(r)
	}
	flush()
	return out
}
