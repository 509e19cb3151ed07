package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulePatterns(t *testing.T) {
	assert.Equal(t, `\.ru$`, Suffix(".ru").Pattern())
	assert.Equal(t, `\.ru\.`, Contains(".ru.").Pattern())
	assert.Equal(t, `^ru\.`, Prefix("ru.").Pattern())
	assert.Equal(t, `belarus`, Domain("belarus").Pattern())
	assert.Equal(t, `mail\.ru`, Domain("mail.ru").Pattern())
}

func TestDomainRule(t *testing.T) {
	r := Domain("yandex")
	assert.True(t, r.Match("yandex.com"))
	assert.True(t, r.Match("ntp.yandex.net"))
	assert.True(t, r.Match("a.yandexcloud.net"))
	assert.False(t, r.Match("notyandex.com"))
}

func TestDefaultRulesOrder(t *testing.T) {
	rules := DefaultRules()
	assert.Len(t, rules, 14)

	// the final-position TLD rules sit first so "ntp.ru" reports the
	// suffix pattern, not an interior one
	var first Rule
	for _, r := range rules {
		if r.Match("ntp.ru") {
			first = r
			break
		}
	}
	assert.Equal(t, `\.ru$`, first.Pattern())
}
