package weather

import "strings"

type seasonTip struct {
	months string
	advice string
}

// staticBestTime mirrors GeneralInfoExpert.TRAVEL_TIPS's weather/best_time
// fields (original_source/.../general_info_expert.py); GetBestTime always
// answers from this table.
var staticBestTime = map[string]seasonTip{
	"thanh-hoa": {
		months: "Tháng 3-5 và 9-11",
		advice: "Tránh mùa mưa bão tháng 7-8. Khí hậu nhiệt đới gió mùa, mùa khô từ tháng 11-4.",
	},
	"da-nang": {
		months: "Tháng 3-8, đặc biệt tháng 4-6",
		advice: "Hai mùa rõ rệt: khô (2-8) và mưa (9-1). Thời tiết đẹp nhất để tắm biển là tháng 4-6.",
	},
	"ha-noi": {
		months: "Tháng 9-11 và 3-4",
		advice: "Mùa thu (9-11) đẹp nhất. Tránh tháng 6-8 vì nóng ẩm.",
	},
	"ho-chi-minh": {
		months: "Tháng 12-4",
		advice: "Mùa khô, nóng quanh năm. Tháng 1-2 trùng Tết Nguyên Đán rất nhộn nhịp.",
	},
	"lam-dong": {
		months: "Tháng 11-3",
		advice: "Mùa khô, hoa nở. Đà Lạt mát mẻ quanh năm 15-25°C, mang áo ấm buổi tối.",
	},
	"thua-thien-hue": {
		months: "Tháng 2-4",
		advice: "Khô ráo, thời tiết đẹp nhất. Mưa nhiều từ tháng 9-12.",
	},
	"quang-nam": {
		months: "Tháng 2-5",
		advice: "Tránh tháng 10-11 vì hay ngập lụt ở Hội An.",
	},
	"khanh-hoa": {
		months: "Tháng 1-8",
		advice: "Nắng ấm quanh năm, tốt cho tắm biển và lặn biển. Mùa mưa ngắn 10-12.",
	},
	"default": {
		months: "Tháng 10-4",
		advice: "Mùa khô là mùa du lịch chính ở Việt Nam. Tránh mùa mưa bão tháng 7-9.",
	},
}

// normalizeProvince turns a free-text destination into the TRAVEL_TIPS key
// space; unrecognized destinations map to "default" the same way
// GeneralInfoExpert._normalize_location falls back.
func normalizeProvince(location string) string {
	l := strings.ToLower(strings.TrimSpace(location))
	switch {
	case strings.Contains(l, "đà nẵng"), strings.Contains(l, "da nang"):
		return "da-nang"
	case strings.Contains(l, "hà nội"), strings.Contains(l, "ha noi"):
		return "ha-noi"
	case strings.Contains(l, "hồ chí minh"), strings.Contains(l, "sài gòn"), strings.Contains(l, "ho chi minh"):
		return "ho-chi-minh"
	case strings.Contains(l, "đà lạt"), strings.Contains(l, "lâm đồng"), strings.Contains(l, "da lat"):
		return "lam-dong"
	case strings.Contains(l, "huế"), strings.Contains(l, "hue"):
		return "thua-thien-hue"
	case strings.Contains(l, "hội an"), strings.Contains(l, "quảng nam"), strings.Contains(l, "hoi an"):
		return "quang-nam"
	case strings.Contains(l, "nha trang"), strings.Contains(l, "khánh hòa"):
		return "khanh-hoa"
	case strings.Contains(l, "thanh hóa"), strings.Contains(l, "sầm sơn"):
		return "thanh-hoa"
	default:
		return "default"
	}
}

// geocodeLocation is a minimal static gazetteer for the provinces the
// candidate corpus covers; it is not a general geocoder. Returns ok=false
// for anything unrecognized so callers degrade to the static table.
func geocodeLocation(location string) (lat, lng float64, ok bool) {
	switch normalizeProvince(location) {
	case "da-nang":
		return 16.0544, 108.2022, true
	case "ha-noi":
		return 21.0278, 105.8342, true
	case "ho-chi-minh":
		return 10.7769, 106.7009, true
	case "lam-dong":
		return 11.9404, 108.4583, true
	case "thua-thien-hue":
		return 16.4637, 107.5909, true
	case "quang-nam":
		return 15.8801, 108.3380, true
	case "khanh-hoa":
		return 12.2388, 109.1967, true
	case "thanh-hoa":
		return 19.8066, 105.7852, true
	default:
		return 0, 0, false
	}
}
