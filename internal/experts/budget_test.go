package experts

import (
	"context"
	"testing"
)

func TestBudgetParserPatternsAreIdempotent(t *testing.T) {
	queries := []string{
		"tìm khách sạn dưới 2 triệu",
		"homestay trên 500k",
		"khoảng 1.5 triệu một đêm",
		"từ 1 đến 3 triệu",
	}

	p := &BudgetParser{}
	for _, q := range queries {
		first := p.Parse(context.Background(), q, "")
		second := p.Parse(context.Background(), q, "")
		if first != second {
			t.Errorf("Parse(%q) not idempotent: %+v != %+v", q, first, second)
		}
	}
}

func TestBudgetParserUnderPattern(t *testing.T) {
	p := &BudgetParser{}
	r := p.Parse(context.Background(), "tìm khách sạn dưới 2 triệu", "")
	if r.MinPrice != 0 || r.MaxPrice != 2_000_000 {
		t.Errorf("expected [0, 2000000], got %+v", r)
	}
}

func TestBudgetParserOverPattern(t *testing.T) {
	p := &BudgetParser{}
	r := p.Parse(context.Background(), "khách sạn trên 3 triệu", "")
	if r.MinPrice != 3_000_000 || r.MaxPrice != 0 {
		t.Errorf("expected [3000000, 0], got %+v", r)
	}
}

func TestBudgetParserBetweenPattern(t *testing.T) {
	p := &BudgetParser{}
	r := p.Parse(context.Background(), "ngân sách từ 1 đến 3 triệu", "")
	if r.MinPrice != 1_000_000 || r.MaxPrice != 3_000_000 {
		t.Errorf("expected [1000000, 3000000], got %+v", r)
	}
}

func TestBudgetParserFallsBackToBudgetLevelKeyword(t *testing.T) {
	p := &BudgetParser{}
	r := p.Parse(context.Background(), "tìm chỗ ở giá rẻ", "tiết kiệm")
	if r.MinPrice != 0 || r.MaxPrice != 500_000 {
		t.Errorf("expected tiết kiệm range [0, 500000], got %+v", r)
	}
}

func TestBudgetParserNoMatchReturnsZeroRange(t *testing.T) {
	p := &BudgetParser{}
	r := p.Parse(context.Background(), "tìm một nơi đẹp để đi", "")
	if r.MinPrice != 0 || r.MaxPrice != 0 {
		t.Errorf("expected zero range when nothing matches and no LLM configured, got %+v", r)
	}
}
