package experts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"travelcore/internal/coretypes"
	"travelcore/internal/docstore"
)

// foodKeywords catches food-related words inside the free-text query, so a
// query like "quán bún bò ngon" contributes "bún" and "quán" to the search
// keyword set (food_expert.py's FOOD_KEYWORDS).
var foodKeywords = []string{
	"quán", "nhà hàng", "restaurant", "ăn", "món",
	"bún", "phở", "cơm", "bánh", "chả", "nem",
	"hải sản", "seafood", "cafe", "cà phê", "coffee",
	"bia", "bar", "pub", "đặc sản", "ẩm thực",
}

// strongFoodKeywords must appear in a candidate's name/description for it
// to count as food at all (food_expert.py's strong_food_keywords).
var strongFoodKeywords = []string{
	"nhà hàng", "restaurant", "quán ăn", "quán", "ăn", "món",
	"bún", "phở", "cơm", "bánh", "chả", "nem",
	"hải sản", "seafood", "cafe", "cà phê", "buffet",
}

// nonFoodKeywords disqualify a candidate even if it matched a strong food
// keyword — landmarks, markets, bridges etc. (food_expert.py's
// non_food_keywords).
var nonFoodKeywords = []string{
	"bảo tàng", "museum", "nhà thờ", "church", "chùa", "temple",
	"cung", "palace", "di tích", "monument", "công viên", "park",
	"cầu", "bridge", "chợ", "market", "đỉnh", "núi", "mountain",
	"bãi biển", "beach", "vịnh", "bay", "hồ", "lake", "suối", "stream",
}

// regionalFoods maps a province_id to its signature dishes, used both to
// enrich the search keyword set and as the fallback "regional specialty"
// recommendation when Mongo doesn't have enough real restaurants
// (food_expert.py's REGIONAL_FOODS).
var regionalFoods = map[string][]string{
	"thua-thien-hue": {"bún bò huế", "cơm hến", "bánh bèo", "bánh nậm", "nem lụi"},
	"da-nang":        {"mì quảng", "bánh tráng cuốn thịt heo", "bún chả cá"},
	"ha-noi":         {"phở", "bún chả", "chả cá lã vọng", "bánh cuốn", "bún thang"},
	"ho-chi-minh":    {"hủ tiếu", "bánh mì", "cơm tấm", "phở"},
	"kien-giang":     {"bún quậy", "bún kèn", "hải sản phú quốc"},
	"khanh-hoa":      {"bánh căn", "bún cá", "nem nướng ninh hòa"},
	"lam-dong":       {"bánh tráng nướng đà lạt", "atiso", "dâu tây"},
	"quang-nam":      {"cao lầu", "mì quảng", "cơm gà hội an"},
}

const defaultFoodLimit = 5
const minValidRestaurants = 2

// FoodExpert finds food spots/restaurants, falling back to a regional
// specialty recommendation when the document store has too few
// legitimately food-related hits (§4.4.3).
type FoodExpert struct {
	Store docstore.Store
}

func (e *FoodExpert) ExpertType() string { return "food_expert" }

func (e *FoodExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	start := time.Now()

	location := stringParam(params, "location")
	keywords := stringsFromAny(params["keywords"])
	limit := intParam(params, "limit", defaultFoodLimit)

	provinceID := normalizeLocation(location)
	searchKeywords := buildFoodSearchKeywords(query, keywords, provinceID)

	mongoResults := e.searchMongo(ctx, provinceID, searchKeywords, limit)

	var results []map[string]any
	valid := filterValidRestaurants(mongoResults)
	if len(valid) >= minValidRestaurants {
		results = valid
		if len(results) > limit {
			results = results[:limit]
		}
	}

	if len(results) == 0 && provinceID != "" {
		if specialties := regionalFoods[provinceID]; len(specialties) > 0 {
			results = append(results, map[string]any{
				"id":          "specialty-" + provinceID,
				"name":        fmt.Sprintf("Đặc sản %s", nonEmptyOr(location, provinceID)),
				"type":        "recommendation",
				"description": fmt.Sprintf("Các món nên thử khi đến %s", location),
				"dishes":      specialties,
				"source":      "local_knowledge",
			})
		}
	}

	return &coretypes.ExpertResult{
		ExpertType:      e.ExpertType(),
		Success:         true,
		Data:            results,
		Summary:         foodSummary(results, location, keywords),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}
}

// buildFoodSearchKeywords unions explicit keywords, any food keyword found
// literally in the query, and any regional specialty named in the query —
// defaulting to generic food terms when nothing else matched
// (food_expert.py's _build_search_keywords).
func buildFoodSearchKeywords(query string, keywords []string, provinceID string) []string {
	set := map[string]bool{}
	for _, k := range keywords {
		set[k] = true
	}

	queryLower := strings.ToLower(query)
	for _, kw := range foodKeywords {
		if strings.Contains(queryLower, kw) {
			set[kw] = true
		}
	}

	for _, specialty := range regionalFoods[provinceID] {
		if strings.Contains(queryLower, strings.ToLower(specialty)) {
			set[specialty] = true
		}
	}

	if len(set) == 0 {
		set["quán"] = true
		set["ăn"] = true
		set["nhà hàng"] = true
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func (e *FoodExpert) searchMongo(ctx context.Context, provinceID string, keywords []string, limit int) []map[string]any {
	if e.Store == nil {
		return nil
	}
	coll := e.Store.Collection("spots_detailed")

	filter := bson.M{}
	if provinceID != "" {
		filter["province_id"] = provinceID
	}
	if or := keywordOrClauses(keywords, "", nil, "name", "description_short", "description_full"); len(or) > 0 {
		filter["$or"] = or
	}

	cur, err := coll.Find(ctx, filter, docstore.WithSort(bson.D{{Key: "rating", Value: -1}}), docstore.WithLimit(int64(limit*5)))
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

		name := strings.ToLower(stringOr(doc["name"], ""))
		descShort := strings.ToLower(stringOr(doc["description_short"], ""))
		descFull := strings.ToLower(stringOr(doc["description_full"], ""))

		if !containsAny(strongFoodKeywords, name, descShort, descFull) {
			continue
		}
		if containsAny(nonFoodKeywords, name) {
			continue
		}

		results = append(results, map[string]any{
			"id":          doc["id"],
			"name":        doc["name"],
			"type":        "restaurant",
			"province_id": doc["province_id"],
			"description": truncate(stringOr(doc["description_short"], ""), 200),
			"image":       doc["image"],
			"rating":      doc["rating"],
			"address":     stringOr(doc["address"], ""),
			"cost":        stringOr(doc["cost"], ""),
			"source":      "mongodb",
		})
	}
	return results
}

// filterValidRestaurants re-validates each Mongo hit against its own
// restaurant-indicator / non-restaurant lists, which differ slightly from
// the marker lists used by the query (food_expert.py's
// _is_valid_restaurant runs the same kind of second check — kept here too since a hit could slip through the
// Mongo-side filter via description_short/full but still read oddly in
// its name alone).
func filterValidRestaurants(results []map[string]any) []map[string]any {
	restaurantIndicators := []string{"nhà hàng", "restaurant", "quán", "ăn", "buffet", "cafe", "bar", "pub"}
	nonRestaurantKeywords := []string{"bảo tàng", "museum", "nhà thờ", "church", "chùa", "temple", "cầu", "bridge", "chợ", "market", "đỉnh", "núi", "bãi biển", "vịnh", "cung", "di tích"}

	var valid []map[string]any
	for _, r := range results {
		name := strings.ToLower(stringOr(r["name"], ""))
		desc := strings.ToLower(stringOr(r["description"], ""))

		hasIndicator := containsAny(restaurantIndicators, name, desc)
		isNonRestaurant := containsAny(nonRestaurantKeywords, name)

		if hasIndicator && !isNonRestaurant {
			valid = append(valid, r)
		}
	}
	return valid
}

func containsAny(keywords []string, haystacks ...string) bool {
	for _, kw := range keywords {
		for _, h := range haystacks {
			if strings.Contains(h, kw) {
				return true
			}
		}
	}
	return false
}

func foodSummary(results []map[string]any, location string, keywords []string) string {
	loc := location
	if loc == "" {
		loc = "khu vực này"
	}
	if len(results) == 0 {
		return fmt.Sprintf("Không tìm thấy quán ăn phù hợp ở %s", loc)
	}

	var foodSpots []map[string]any
	for _, r := range results {
		if r["type"] != "recommendation" {
			foodSpots = append(foodSpots, r)
		}
	}

	keywordsText := ""
	if len(keywords) > 0 {
		keywordsText = fmt.Sprintf(" (%s)", joinWithComma(keywords))
	}

	if len(foodSpots) > 0 {
		topNames := []string{}
		for i, r := range foodSpots {
			if i >= 2 {
				break
			}
			topNames = append(topNames, stringOr(r["name"], "?"))
		}
		return fmt.Sprintf("Tìm thấy %d địa điểm ăn uống%s tại %s. Gợi ý: %s", len(foodSpots), keywordsText, loc, joinWithComma(topNames))
	}

	return fmt.Sprintf("Gợi ý ẩm thực cho %s", loc)
}

func nonEmptyOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
