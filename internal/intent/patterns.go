package intent

import "travelcore/internal/coretypes"

// intentPatterns mirrors original_source's IntentExtractor.INTENT_PATTERNS:
// phrase lists checked in precedence order so a read-only request like
// "xem lại lịch trình" is never shadowed by a broader keyword such as
// "khách sạn" appearing later in the same sentence.
var intentPatterns = map[coretypes.PrimaryIntent][]string{
	coretypes.IntentShowItinerary: {
		"xem lại", "xem lai", "hiển thị lịch trình", "hien thi lich trinh",
		"lịch trình của tôi", "lich trinh cua toi", "lịch trình đã tạo",
		"lich trinh da tao", "cho tôi xem", "cho toi xem",
		"lịch trình hiện có", "lich trinh hien co",
		"địa điểm sẽ đến", "dia diem se den", "địa điểm đã chọn",
		"dia diem da chon", "các địa điểm", "cac dia diem",
	},
	coretypes.IntentCalculateCost: {
		"tính tiền", "tinh tien", "chi phí", "chi phi", "bao nhiêu tiền",
		"bao nhieu tien", "số tiền", "so tien", "giá bao nhiêu",
		"gia bao nhieu", "tổng cộng", "tong cong", "ước tính chi phí",
		"uoc tinh chi phi", "estimate", "lập budget", "lap budget",
		"lập chi phí", "lap chi phi", "budget",
	},
	coretypes.IntentUpdatePeopleCount: {
		"người thì sao", "nguoi thi sao", "đổi số người", "doi so nguoi",
		"thay đổi số người", "thay doi so nguoi", "với số người",
		"voi so nguoi", "người tham gia", "nguoi tham gia",
	},
	coretypes.IntentGetPlaceDetails: {
		"chi tiết về", "chi tiet ve", "giới thiệu về", "gioi thieu ve",
		"thông tin về", "thong tin ve", "cho tôi biết về", "cho toi biet ve",
		"kể về", "ke ve", "mô tả", "mo ta", "nói về", "noi ve",
	},
	coretypes.IntentGetLocationTips: {
		"lưu ý", "luu y", "kinh nghiệm", "kinh nghiem", "tips",
		"có gì cần biết", "co gi can biet", "nên biết", "nen biet",
		"chú ý", "chu y", "khuyến cáo", "khuyen cao", "mẹo", "meo",
	},
	coretypes.IntentBookHotel: {
		"đặt phòng", "dat phong", "book", "đặt chỗ", "dat cho",
		"thuê phòng", "thue phong", "reserve", "booking",
	},
	coretypes.IntentFindHotel: {
		"khách sạn", "khach san", "hotel", "resort", "homestay",
		"chỗ ở", "cho o", "nghỉ", "nghi", "lưu trú", "luu tru",
	},
	coretypes.IntentFindFood: {
		"quán", "quan", "nhà hàng", "nha hang", "món", "mon", "bún", "bun",
		"phở", "pho", "hải sản", "hai san", "ẩm thực", "am thuc",
		"đặc sản", "dac san",
	},
	coretypes.IntentFindSpot: {
		"địa điểm", "dia diem", "chỗ nào", "cho nao", "ở đâu", "o dau",
		"tham quan", "check-in", "chụp ảnh", "chup anh", "cảnh đẹp",
		"canh dep", "đi chơi", "di choi",
	},
	coretypes.IntentPlanTrip: {
		"lên lịch trình", "len lich trinh", "lập lịch trình", "lap lich trinh",
		"tạo lịch trình", "tao lich trinh", "kế hoạch mới", "ke hoach moi",
		"tạo tour", "tao tour", "bắt đầu lên kế hoạch", "bat dau len ke hoach",
	},
	coretypes.IntentGreeting: {
		"xin chào", "hello", "chào bạn", "hey", "chào nhé",
	},
	coretypes.IntentChitchat: {},
}

var bookingPhrases = []string{"đặt phòng", "dat phong", "book", "đặt chỗ", "dat cho", "thuê phòng", "thue phong", "reserve", "booking"}
var hotelWords = []string{"khách sạn", "khach san", "hotel", "resort", "homestay", "khu nghỉ dưỡng", "khu nghi duong"}

var budgetCalcPhrases = []string{"lập budget", "lap budget", "lập chi phí", "lap chi phi", "tính budget", "tinh budget"}
var costPhrases = []string{"tính tiền", "tinh tien", "chi phí", "chi phi", "bao nhiêu tiền", "bao nhieu tien"}
var planCreationPhrases = []string{"lập lịch trình", "lap lich trinh", "tạo lịch trình", "tao lich trinh", "lên kế hoạch", "len ke hoach"}

var knownLocations = []string{
	"Hà Nội", "Hồ Chí Minh", "Đà Nẵng", "Huế", "Nha Trang", "Đà Lạt",
	"Hội An", "Phú Quốc", "Sapa", "Hạ Long", "Vũng Tàu", "Phan Thiết",
	"Mũi Né", "Cần Thơ", "Ninh Bình", "Quy Nhơn", "Bình Định",
	"Quảng Ninh", "Lào Cai", "Kiên Giang", "Thừa Thiên Huế",
	"Khánh Hòa", "Lâm Đồng", "Bà Rịa Vũng Tàu",
}

var budgetLevelKeywords = map[coretypes.BudgetLevel][]string{
	coretypes.BudgetThrifty: {"tiết kiệm", "tiet kiem", "rẻ", "re", "thấp", "thap", "bình dân", "binh dan", "backpacker"},
	coretypes.BudgetMid:     {"trung bình", "trung binh", "vừa", "vua", "hợp lý", "hop ly"},
	coretypes.BudgetLuxury:  {"sang", "cao cấp", "cao cap", "luxury", "5 sao", "resort"},
}

var companionKeywords = map[coretypes.CompanionType][]struct {
	phrase string
	people int
}{
	coretypes.CompanionCouple: {{"bạn gái", 2}, {"bạn trai", 2}, {"người yêu", 2}, {"vợ chồng", 2}},
	coretypes.CompanionFamily: {{"gia đình", 4}, {"gia dinh", 4}},
	coretypes.CompanionFriends: {{"bạn bè", 4}, {"ban be", 4}, {"nhóm bạn", 4}},
	coretypes.CompanionSolo:   {{"một mình", 1}, {"mot minh", 1}, {"solo", 1}},
}
