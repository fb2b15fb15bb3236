package validation_test

import (
	"testing"

	"go-event-registry/internal/validation"

	"github.com/stretchr/testify/assert"
)

func usernameStyleConfig() validation.Config {
	return validation.Config{
		ValidRange: validation.CharRange{Low: 0x30, High: 0x7a},
		InvalidRanges: []validation.CharRange{
			{Low: 0x3a, High: 0x40},
			{Low: 0x5b, High: 0x60},
		},
		MaxLength: 20,
	}
}

func TestValidate(t *testing.T) {
	cfg := usernameStyleConfig()

	t.Run("Valid string", func(t *testing.T) {
		ok, reason := validation.Validate("HelloWorld", cfg)
		assert.True(t, ok)
		assert.Equal(t, validation.ReasonValid, reason)
		assert.Equal(t, "String is valid", reason.String())
	})

	t.Run("Out of range - up", func(t *testing.T) {
		ok, reason := validation.Validate("Hello|World", cfg)
		assert.False(t, ok)
		assert.Equal(t, "String is not within range", reason.String())
	})

	t.Run("Out of range - down", func(t *testing.T) {
		ok, reason := validation.Validate("Hello World", cfg)
		assert.False(t, ok)
		assert.Equal(t, "String is not within range", reason.String())
	})

	t.Run("Invalid character", func(t *testing.T) {
		ok, reason := validation.Validate("Hello_World", cfg)
		assert.False(t, ok)
		assert.Equal(t, "String contains invalid character", reason.String())
	})

	t.Run("Too long", func(t *testing.T) {
		ok, reason := validation.Validate("HelloWorldaaaaaaaaaaaaqaaaa", cfg)
		assert.False(t, ok)
		assert.Equal(t, "String exceeds the max length", reason.String())
	})

	t.Run("Too short - only when min length configured", func(t *testing.T) {
		withMin := cfg
		withMin.MinLength = 3

		ok, reason := validation.Validate("om", withMin)
		assert.False(t, ok)
		assert.Equal(t, "String subceeds the min length", reason.String())

		// MinLength 0 時不檢查下限
		ok, reason = validation.Validate("om", cfg)
		assert.True(t, ok)
		assert.Equal(t, validation.ReasonValid, reason)
	})

	t.Run("Empty string is valid without min length", func(t *testing.T) {
		ok, reason := validation.Validate("", cfg)
		assert.True(t, ok)
		assert.Equal(t, validation.ReasonValid, reason)
	})
}

// 同時違反多條規則時，回報的原因依 範圍 → 禁用字元 → 過長 → 過短 的順序決定
func TestValidatePrecedence(t *testing.T) {
	cfg := usernameStyleConfig()
	cfg.MinLength = 30

	t.Run("Range check wins over invalid character", func(t *testing.T) {
		// '_' 是禁用字元、' ' 超出範圍，但範圍檢查先跑完整個字串
		ok, reason := validation.Validate("a_b c", cfg)
		assert.False(t, ok)
		assert.Equal(t, validation.ReasonOutOfRange, reason)
	})

	t.Run("Invalid character wins over length", func(t *testing.T) {
		// 字串同時過短（min 30）且含禁用字元
		ok, reason := validation.Validate("a_b", cfg)
		assert.False(t, ok)
		assert.Equal(t, validation.ReasonInvalidCharacter, reason)
	})

	t.Run("Too long wins over too short check order", func(t *testing.T) {
		long := cfg
		long.MaxLength = 2
		long.MinLength = 10
		ok, reason := validation.Validate("abcde", long)
		assert.False(t, ok)
		assert.Equal(t, validation.ReasonTooLong, reason)
	})
}

func TestCharRangeContains(t *testing.T) {
	r := validation.CharRange{Low: 0x30, High: 0x39}
	assert.True(t, r.Contains('0'))
	assert.True(t, r.Contains('9'))
	assert.False(t, r.Contains('a'))
	assert.False(t, r.Contains(' '))
}
