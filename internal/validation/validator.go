package validation

// Reason 字串驗證結果
type Reason string

const (
	ReasonValid            Reason = "String is valid"
	ReasonOutOfRange       Reason = "String is not within range"
	ReasonInvalidCharacter Reason = "String contains invalid character"
	ReasonTooLong          Reason = "String exceeds the max length"
	ReasonTooShort         Reason = "String subceeds the min length"
)

func (r Reason) String() string {
	return string(r)
}

// CharRange 字元碼的閉區間 [Low, High]
type CharRange struct {
	Low  byte `json:"low"`
	High byte `json:"high"`
}

func (r CharRange) Contains(b byte) bool {
	return b >= r.Low && b <= r.High
}

// Config 驗證規則。MinLength 為 0 時不檢查下限。
type Config struct {
	ValidRange    CharRange
	InvalidRanges []CharRange
	MinLength     int
	MaxLength     int
}

// Validate 依序檢查：字元範圍 → 禁用子區間 → 長度上限 → 長度下限。
// 第一個失敗的規則決定回傳的 Reason。
func Validate(s string, cfg Config) (bool, Reason) {
	for i := 0; i < len(s); i++ {
		if !cfg.ValidRange.Contains(s[i]) {
			return false, ReasonOutOfRange
		}
	}
	for i := 0; i < len(s); i++ {
		for _, r := range cfg.InvalidRanges {
			if r.Contains(s[i]) {
				return false, ReasonInvalidCharacter
			}
		}
	}
	if len(s) > cfg.MaxLength {
		return false, ReasonTooLong
	}
	if cfg.MinLength > 0 && len(s) < cfg.MinLength {
		return false, ReasonTooShort
	}
	return true, ReasonValid
}
