package validation

import "time"

// 表單欄位名稱，錯誤訊息以欄位為 key 回傳
const (
	FieldStartDate         = "start_date"
	FieldEndDate           = "end_date"
	FieldRegistrationStart = "registration_start"
	FieldRegistrationEnd   = "registration_end"
)

// Schedule 四個候選時間戳，ISO-8601 字串，空字串表示尚未填寫
type Schedule struct {
	StartDate         string
	EndDate           string
	RegistrationStart string
	RegistrationEnd   string
}

// 接受的 ISO-8601 格式，依序嘗試
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime 解析 ISO-8601 時間字串，無時區資訊時視為 UTC
func ParseDateTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type parsedSchedule struct {
	start    *time.Time
	end      *time.Time
	regStart *time.Time
	regEnd   *time.Time
}

// scheduleRule 每條規則只掛在一個欄位上，獨立判斷
type scheduleRule struct {
	field string
	check func(p parsedSchedule, now time.Time) string
}

// 規則依序評估。registration_end 有兩條規則，先命中者優先，
// 不做覆寫（regEnd vs regStart 先於 regEnd vs start）。
var scheduleRules = []scheduleRule{
	{FieldStartDate, func(p parsedSchedule, now time.Time) string {
		if p.start != nil && !p.start.After(now) {
			return "start date must be in the future"
		}
		return ""
	}},
	{FieldEndDate, func(p parsedSchedule, _ time.Time) string {
		if p.start != nil && p.end != nil && !p.end.After(*p.start) {
			return "end date must be after start date"
		}
		return ""
	}},
	{FieldRegistrationStart, func(p parsedSchedule, _ time.Time) string {
		if p.regStart != nil && p.start != nil && !p.regStart.Before(*p.start) {
			return "registration must start before the event starts"
		}
		return ""
	}},
	{FieldRegistrationEnd, func(p parsedSchedule, _ time.Time) string {
		if p.regStart != nil && p.regEnd != nil && !p.regEnd.After(*p.regStart) {
			return "registration end must be after registration start"
		}
		return ""
	}},
	{FieldRegistrationEnd, func(p parsedSchedule, _ time.Time) string {
		if p.regEnd != nil && p.start != nil && p.regEnd.After(*p.start) {
			return "registration must end before event start"
		}
		return ""
	}},
}

// ValidateSchedule 檢查四個時間戳之間與當下時間的排序約束。
// 回傳欄位到錯誤訊息的映射，空映射表示全部通過；不會 panic。
// 缺少的欄位不參與檢查，格式錯誤的欄位直接標記為無效。
func ValidateSchedule(s Schedule, now time.Time) map[string]string {
	errs := make(map[string]string)
	p := parsedSchedule{
		start:    parseField(s.StartDate, FieldStartDate, errs),
		end:      parseField(s.EndDate, FieldEndDate, errs),
		regStart: parseField(s.RegistrationStart, FieldRegistrationStart, errs),
		regEnd:   parseField(s.RegistrationEnd, FieldRegistrationEnd, errs),
	}

	for _, rule := range scheduleRules {
		if _, taken := errs[rule.field]; taken {
			continue
		}
		if msg := rule.check(p, now); msg != "" {
			errs[rule.field] = msg
		}
	}
	return errs
}

func parseField(value, field string, errs map[string]string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := ParseDateTime(value)
	if err != nil {
		errs[field] = "invalid date format"
		return nil
	}
	return &t
}
