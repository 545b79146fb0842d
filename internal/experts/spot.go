package experts

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"travelcore/internal/coretypes"
	"travelcore/internal/docstore"
	"travelcore/internal/hybridsearch"
)

const defaultSpotLimit = 10
const spotHybridThreshold = 0.3

// SpotExpert finds tourist spots, trying hybrid search with the province
// as a hard filter before falling back to a Mongo regex search (§4.4.1).
// original_source's retrieval pack didn't include a standalone
// spot_expert.py module, so this cascade is grounded on HotelExpert's
// identical hybrid-search-then-Mongo shape plus base_expert.py's shared
// normalization/coordinate tables.
type SpotExpert struct {
	Store  docstore.Store
	Search hybridsearch.Client
}

func (e *SpotExpert) ExpertType() string { return "spot_expert" }

func (e *SpotExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	start := time.Now()

	location := stringParam(params, "location")
	interests := stringsFromAny(params["interests"])
	keywords := stringsFromAny(params["keywords"])
	limit := intParam(params, "limit", defaultSpotLimit)

	provinceID := normalizeLocation(location)

	if e.Search != nil {
		records, err := e.Search.SearchSpots(ctx, query, provinceID, limit, spotHybridThreshold)
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

	terms := keywords
	if len(terms) == 0 {
		terms = interests
	}
	results := e.searchMongo(ctx, provinceID, terms, limit)

	return &coretypes.ExpertResult{
		ExpertType:      e.ExpertType(),
		Success:         true,
		Data:            results,
		Summary:         spotSummary(results, location),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}
}

func (e *SpotExpert) searchMongo(ctx context.Context, provinceID string, terms []string, limit int) []map[string]any {
	if e.Store == nil {
		return nil
	}
	coll := e.Store.Collection("spots_detailed")

	filter := bson.M{}
	if provinceID != "" {
		filter["province_id"] = provinceID
	}
	if or := keywordOrClauses(terms, "", nil, "name", "description_short", "description_full"); len(or) > 0 {
		filter["$or"] = or
	}

	cur, err := coll.Find(ctx, filter, docstore.WithSort(bson.D{{Key: "rating", Value: -1}}), docstore.WithLimit(int64(limit)))
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
		image, _ := doc["image"].(string)
		if image == "" {
			image, _ = doc["image_url"].(string)
		}
		results = append(results, map[string]any{
			"id":          doc["id"],
			"name":        doc["name"],
			"province_id": doc["province_id"],
			"category":    doc["category"],
			"description": truncate(stringOr(doc["description_short"], ""), 200),
			"image":       image,
			"rating":      doc["rating"],
			"latitude":    doc["latitude"],
			"longitude":   doc["longitude"],
			"source":      "mongodb",
		})
	}
	return results
}

func spotSummary(results []map[string]any, location string) string {
	loc := location
	if loc == "" {
		loc = "khu vực này"
	}
	if len(results) == 0 {
		return fmt.Sprintf("Không tìm thấy địa điểm phù hợp ở %s", loc)
	}

	topNames := []string{}
	for i, r := range results {
		if i >= 3 {
			break
		}
		topNames = append(topNames, stringOr(r["name"], "?"))
	}
	return fmt.Sprintf("Tìm thấy %d địa điểm tại %s. Gợi ý: %s", len(results), loc, joinWithComma(topNames))
}
