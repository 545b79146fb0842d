package experts

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"travelcore/internal/llm"
)

// PriceRange is a resolved (min, max) VNĐ band for a budget-bearing task
// parameter, e.g. hotel price or food cost.
type PriceRange struct {
	MinPrice float64
	MaxPrice float64
}

// budgetLevelRanges is the 5-tier table keyed by the Vietnamese budget-level
// phrase a user might type literally, ported verbatim from
// budget_parser.py's BudgetParser.BUDGET_RANGES. Distinct from hotel.go's
// hotelBudgetRanges (3-tier, keyed by the coarse BudgetLevel enum) — the
// original keeps these as two separate tables for two separate call sites
// and this port preserves that split.
var budgetLevelRanges = map[string]PriceRange{
	"tiết kiệm": {0, 500_000},
	"bình dân":  {500_000, 1_000_000},
	"trung bình": {1_000_000, 2_000_000},
	"cao cấp":   {2_000_000, 5_000_000},
	"sang trọng": {5_000_000, 0},
}

var millionPattern = `(\d+(?:[.,]\d+)?)\s*(?:triệu|tr)\b`

var (
	reUnder   = regexp.MustCompile(`(?i)(?:dưới|không quá|tối đa)\s*` + millionPattern)
	reOver    = regexp.MustCompile(`(?i)(?:trên|từ|tối thiểu)\s*` + millionPattern)
	reAround  = regexp.MustCompile(`(?i)(?:khoảng|tầm|tầm khoảng|xấp xỉ)\s*` + millionPattern)
	reBetween = regexp.MustCompile(`(?i)từ\s*(\d+(?:[.,]\d+)?)\s*(?:đến|tới)\s*(\d+(?:[.,]\d+)?)\s*(?:triệu|tr)\b`)
)

// BudgetParser resolves a free-text budget mention (and an optional coarse
// budget_level) into a concrete VNĐ PriceRange, cascading explicit regex
// patterns, then the budget-level keyword table, then an LLM JSON fallback
// (budget_parser.py's BudgetParser.parse).
type BudgetParser struct {
	LLM llm.Client
}

func (p *BudgetParser) Parse(ctx context.Context, query, budgetLevel string) PriceRange {
	if r, ok := parsePatterns(query); ok {
		return r
	}
	if r, ok := lookupBudgetLevel(query); ok {
		return r
	}
	if r, ok := lookupBudgetLevel(budgetLevel); ok {
		return r
	}
	if p.LLM != nil {
		if r, ok := p.parseWithLLM(ctx, query); ok {
			return r
		}
	}
	return PriceRange{0, 0}
}

// parsePatterns tries the "between" range first (it's the most specific),
// then under/over/around — ported from budget_parser.py's _parse_patterns.
func parsePatterns(query string) (PriceRange, bool) {
	if m := reBetween.FindStringSubmatch(query); m != nil {
		lo := parseMillion(m[1])
		hi := parseMillion(m[2])
		return PriceRange{lo, hi}, true
	}
	if m := reUnder.FindStringSubmatch(query); m != nil {
		return PriceRange{0, parseMillion(m[1])}, true
	}
	if m := reOver.FindStringSubmatch(query); m != nil {
		return PriceRange{parseMillion(m[1]), 0}, true
	}
	if m := reAround.FindStringSubmatch(query); m != nil {
		v := parseMillion(m[1])
		return PriceRange{v * 0.9, v * 1.1}, true
	}
	return PriceRange{}, false
}

func parseMillion(raw string) float64 {
	s := strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v * 1_000_000
}

func lookupBudgetLevel(text string) (PriceRange, bool) {
	lower := strings.ToLower(text)
	for level, r := range budgetLevelRanges {
		if strings.Contains(lower, level) {
			return r, true
		}
	}
	return PriceRange{}, false
}

const budgetExtractPrompt = `Trích xuất khoảng giá (đơn vị VNĐ) từ câu sau, trả về JSON dạng {"min_price": số, "max_price": số}. Nếu không có giá trị nào, dùng 0.

Câu: %s`

func (p *BudgetParser) parseWithLLM(ctx context.Context, query string) (PriceRange, bool) {
	result, err := p.LLM.ExtractJSON(ctx, sprintfBudget(query), "")
	if err != nil {
		return PriceRange{}, false
	}
	min, minOK := result["min_price"].(float64)
	max, maxOK := result["max_price"].(float64)
	if !minOK && !maxOK {
		return PriceRange{}, false
	}
	return PriceRange{MinPrice: min, MaxPrice: max}, true
}

func sprintfBudget(query string) string {
	return strings.Replace(budgetExtractPrompt, "%s", query, 1)
}
