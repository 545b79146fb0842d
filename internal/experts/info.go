package experts

import (
	"context"
	"strings"
	"time"

	"travelcore/internal/coretypes"
)

// travelTip holds the canned advice text for one province, ported verbatim
// from general_info_expert.py's TRAVEL_TIPS.
type travelTip struct {
	weather   string
	bestTime  string
	food      string
	transport string
	safety    string
	souvenirs string
	notes     string
}

var travelTips = map[string]travelTip{
	"thanh-hoa": {
		weather:   "Thanh Hóa có khí hậu nhiệt đới gió mùa, mùa hè nóng (tháng 5-8), mùa đông lạnh và khô (tháng 12-2).",
		bestTime:  "Thời điểm đẹp nhất để du lịch Thanh Hóa là tháng 4-8 (mùa hè, tắm biển Sầm Sơn) hoặc tháng 9-11 (thu mát mẻ).",
		food:      "Đặc sản Thanh Hóa: nem chua, chả tôm, bánh gai, gỏi cá nhệch, cua bể Thanh Hóa.",
		transport: "Di chuyển bằng xe khách, tàu hỏa từ Hà Nội (khoảng 3 giờ), hoặc máy bay đến sân bay Thọ Xuân.",
		safety:    "Lưu ý an toàn khi tắm biển vào mùa mưa bão (tháng 8-10), theo dõi dự báo thời tiết trước khi đi.",
		souvenirs: "Nem chua Thanh Hóa, chiếu cói Nga Sơn, mắm tôm là quà lưu niệm phổ biến.",
		notes:     "Nên đặt phòng trước vào mùa cao điểm hè vì Sầm Sơn rất đông khách.",
	},
	"da-nang": {
		weather:   "Đà Nẵng có khí hậu nhiệt đới, mùa khô (tháng 2-8) và mùa mưa (tháng 9-1), bão thường xuất hiện tháng 9-11.",
		bestTime:  "Tháng 2-5 là thời điểm lý tưởng nhất: nắng đẹp, ít mưa, biển êm.",
		food:      "Đặc sản: mì Quảng, bánh tráng cuốn thịt heo, bún chả cá, hải sản tươi sống.",
		transport: "Sân bay quốc tế Đà Nẵng đón nhiều chuyến bay nội địa và quốc tế; taxi, Grab phổ biến trong thành phố.",
		safety:    "Theo dõi tin bão vào mùa mưa bão (tháng 9-11), tránh tắm biển khi có cảnh báo sóng lớn.",
		souvenirs: "Bánh tráng, mực khô, đá mỹ nghệ Non Nước.",
		notes:     "Bán đảo Sơn Trà và Bà Nà Hills nên đi sớm để tránh đông khách.",
	},
	"ha-noi": {
		weather:   "Hà Nội có 4 mùa rõ rệt: xuân (2-4), hè nóng ẩm (5-8), thu mát (9-11), đông lạnh khô (12-1).",
		bestTime:  "Mùa thu (tháng 9-11) là đẹp nhất với thời tiết mát mẻ, trời trong xanh.",
		food:      "Đặc sản: phở, bún chả, chả cá Lã Vọng, bánh cuốn, bún thang, cà phê trứng.",
		transport: "Sân bay Nội Bài cách trung tâm 30km; di chuyển nội đô bằng taxi, Grab, xe buýt hoặc đi bộ ở phố cổ.",
		safety:    "Cẩn thận móc túi ở khu phố cổ và các điểm du lịch đông người.",
		souvenirs: "Lụa Vạn Phúc, ô mai, trà sen Tây Hồ.",
		notes:     "Phố cổ Hà Nội đi bộ là trải nghiệm tốt nhất, nên tránh giờ cao điểm tắc đường.",
	},
	"ho-chi-minh": {
		weather:   "TP.HCM có khí hậu nhiệt đới gió mùa, mùa khô (tháng 12-4) và mùa mưa (tháng 5-11).",
		bestTime:  "Mùa khô (tháng 12-4) là thời điểm tốt nhất, ít mưa, dễ di chuyển.",
		food:      "Đặc sản: hủ tiếu, bánh mì, cơm tấm, phở, các món ăn đường phố đa dạng.",
		transport: "Sân bay Tân Sơn Nhất gần trung tâm; Grab, taxi, xe buýt và sắp tới có metro.",
		safety:    "Cẩn thận cướp giật túi xách khi đi xe máy hoặc đứng gần lòng đường.",
		souvenirs: "Kẹo dừa Bến Tre, cà phê, trái cây sấy.",
		notes:     "Giao thông giờ cao điểm rất đông, nên tránh di chuyển 7-9h và 17-19h.",
	},
	"lam-dong": {
		weather:   "Đà Lạt khí hậu ôn đới mát quanh năm, nhiệt độ trung bình 18-23°C, sáng tối se lạnh.",
		bestTime:  "Quanh năm đều đẹp; tháng 12-2 là mùa hoa, tháng 6-9 có mưa nhiều hơn.",
		food:      "Đặc sản: bánh tráng nướng, atiso, dâu tây, rượu vang Đà Lạt, sữa đậu nành nóng.",
		transport: "Sân bay Liên Khương cách trung tâm 30km; xe khách từ TP.HCM khoảng 6-7 giờ.",
		safety:    "Mang theo áo ấm vì buổi tối khá lạnh, đường đèo quanh co cần cẩn thận nếu tự lái xe.",
		souvenirs: "Mứt dâu, atiso, rượu vang, hoa khô.",
		notes:     "Chợ đêm Đà Lạt nên đi vào buổi tối để thưởng thức đồ nướng và không khí se lạnh.",
	},
	"thua-thien-hue": {
		weather:   "Huế có mùa mưa (tháng 9-1, dễ ngập lụt) và mùa khô nóng (tháng 3-8).",
		bestTime:  "Tháng 1-4 là thời điểm đẹp nhất: mát mẻ, ít mưa, thuận tiện tham quan di tích.",
		food:      "Đặc sản: bún bò Huế, cơm hến, bánh bèo, bánh nậm, nem lụi, chè Huế.",
		transport: "Sân bay Phú Bài cách trung tâm 15km; di chuyển bằng xích lô, taxi trong thành nội.",
		safety:    "Theo dõi tin lũ lụt vào mùa mưa (tháng 10-11), hạn chế di chuyển khi có cảnh báo ngập.",
		souvenirs: "Nón lá, mè xửng, tôm chua Huế.",
		notes:     "Tham quan Đại Nội nên đi sớm để tránh nắng gắt buổi trưa.",
	},
	"quang-nam": {
		weather:   "Hội An mùa khô (tháng 2-8) ít mưa, mùa mưa (tháng 9-1) có thể ngập lụt phố cổ.",
		bestTime:  "Tháng 2-4 là lý tưởng nhất, tháng 14 âm lịch hàng tháng có đêm phố cổ đèn lồng.",
		food:      "Đặc sản: cao lầu, mì Quảng, cơm gà Hội An, bánh mì Phượng.",
		transport: "Cách sân bay Đà Nẵng khoảng 30km, taxi hoặc xe đưa đón là lựa chọn phổ biến.",
		safety:    "Phố cổ hay ngập nhẹ vào mùa mưa, kiểm tra mực nước trước khi đi dạo ban đêm.",
		souvenirs: "Đèn lồng Hội An, lụa, đồ thủ công mỹ nghệ.",
		notes:     "Nên thuê xe đạp dạo phố cổ, vé tham quan phố cổ Hội An là vé liên thông các điểm.",
	},
	"khanh-hoa": {
		weather:   "Nha Trang khí hậu khô ráo quanh năm, mùa mưa ngắn (tháng 10-12).",
		bestTime:  "Tháng 1-8 là thời điểm đẹp nhất để tắm biển, lặn ngắm san hô.",
		food:      "Đặc sản: bánh căn, bún cá, nem nướng Ninh Hòa, hải sản tươi sống.",
		transport: "Sân bay Cam Ranh cách trung tâm khoảng 35km; taxi, Grab phổ biến trong thành phố.",
		safety:    "Kiểm tra cờ cảnh báo khi tắm biển, cẩn thận dòng chảy xa bờ (rip current).",
		souvenirs: "Yến sào, nước mắm Nha Trang, đồ thủ công từ vỏ ốc.",
		notes:     "Các tour đảo nên đặt trước vào mùa cao điểm hè.",
	},
	"default": {
		weather:   "Việt Nam có khí hậu nhiệt đới gió mùa, thời tiết thay đổi khác nhau giữa các vùng miền.",
		bestTime:  "Thời điểm đẹp để du lịch tùy thuộc vào vùng miền, nên kiểm tra mùa mưa/khô của điểm đến cụ thể.",
		food:      "Ẩm thực Việt Nam đa dạng theo vùng miền, mỗi nơi có đặc sản riêng đáng thử.",
		transport: "Di chuyển bằng máy bay, tàu hỏa, xe khách tùy khoảng cách; taxi/Grab phổ biến trong thành phố.",
		safety:    "Luôn kiểm tra thời tiết trước chuyến đi và cẩn thận tư trang ở nơi đông người.",
		souvenirs: "Mỗi vùng miền có đặc sản và quà lưu niệm riêng, nên hỏi người địa phương.",
		notes:     "",
	},
}

// GeneralInfoExpert answers travel-logistics questions (weather, timing,
// food, transport, safety, souvenirs) from a canned per-province tip table
// instead of a live weather/search call (§4.4.6). Scoped down from
// general_info_expert.py's full entity-extraction pipeline — this port only
// keeps the keyword-category matching (_get_relevant_tips), since the
// upstream entity extractor isn't part of this system's retrieval pack.
type GeneralInfoExpert struct{}

func (e *GeneralInfoExpert) ExpertType() string { return "general_info_expert" }

func (e *GeneralInfoExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	start := time.Now()

	location := stringParam(params, "location")
	provinceID := normalizeLocation(location)

	tip, ok := travelTips[provinceID]
	if !ok {
		tip = travelTips["default"]
	}

	tips := relevantTips(query, tip)

	return &coretypes.ExpertResult{
		ExpertType:      e.ExpertType(),
		Success:         true,
		Data:            []map[string]any{{"location": location, "province_id": provinceID, "tips": tips}},
		Summary:         strings.Join(tips, " "),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}
}

// relevantTips matches the query against keyword categories and returns
// only the tips that category covers; if nothing matched, it returns a
// short overview (best_time/food/transport/safety(+souvenirs/notes))
// instead of every field (general_info_expert.py's _get_relevant_tips).
func relevantTips(query string, tip travelTip) []string {
	q := strings.ToLower(query)

	var tips []string
	matched := false

	if containsAny([]string{"khí hậu", "weather", "mưa", "nắng"}, q) {
		tips = append(tips, tip.weather)
		matched = true
	}
	if containsAny([]string{"thời gian", "khi nào", "tháng", "mùa", "nên đi"}, q) {
		tips = append(tips, tip.bestTime)
		matched = true
	}
	if containsAny([]string{"ăn", "món", "food", "đặc sản", "quán", "nhà hàng"}, q) {
		tips = append(tips, tip.food)
		matched = true
	}
	if containsAny([]string{"di chuyển", "phương tiện", "transport", "xe", "taxi", "grab"}, q) {
		tips = append(tips, tip.transport)
		matched = true
	}
	if containsAny([]string{"an toàn", "lưu ý", "cẩn thận", "đề phòng", "safety", "chuẩn bị", "note"}, q) {
		tips = append(tips, tip.safety)
		if tip.notes != "" {
			tips = append(tips, tip.notes)
		}
		matched = true
	}
	if containsAny([]string{"lưu niệm", "quà", "mua gì", "souvenir"}, q) {
		tips = append(tips, tip.souvenirs)
		matched = true
	}

	if matched {
		return tips
	}

	overview := []string{tip.bestTime, tip.food, tip.transport, tip.safety}
	if tip.souvenirs != "" {
		overview = append(overview, tip.souvenirs)
	}
	if tip.notes != "" {
		overview = append(overview, tip.notes)
	}
	return overview
}
