package whitelist

import "strings"

// Rule is one block predicate. Rules are evaluated in a fixed order against
// normalized (lowercase, ASCII) server names; the first match wins.
type Rule interface {
	// Match reports whether the name is blocked by this rule.
	Match(name string) bool

	// Pattern returns the printable form of the rule, quoted verbatim in
	// security error messages.
	Pattern() string
}

// Suffix blocks names ending with the given suffix, e.g. ".ru".
func Suffix(suffix string) Rule {
	return suffixRule{suffix}
}

// Contains blocks names containing the given fragment anywhere, e.g. ".ru.".
func Contains(fragment string) Rule {
	return containsRule{fragment}
}

// Prefix blocks names starting with the given prefix, e.g. "ru.".
func Prefix(prefix string) Rule {
	return prefixRule{prefix}
}

// Domain blocks names containing the given token at the start of the name
// or immediately after a dot. "mail.ru" blocks "mail.ru.example.com" but
// not "hotmail.ru-time.org".
func Domain(token string) Rule {
	return domainRule{token}
}

// DefaultRules returns the production block list: disallowed country-code
// TLDs in final and interior position, plus known untrusted providers.
func DefaultRules() []Rule {
	return []Rule{
		Suffix(".ru"),
		Suffix(".su"),
		Suffix(".by"),
		Suffix(".kz"),
		Contains(".ru."),
		Contains(".su."),
		Contains(".by."),
		Contains(".kz."),
		Prefix("ru."),
		Domain("belarus"),
		Domain("kremlin"),
		Domain("yandex"),
		Domain("mail.ru"),
		Domain("vk.com"),
	}
}

type suffixRule struct {
	suffix string
}

func (r suffixRule) Match(name string) bool {
	return strings.HasSuffix(name, r.suffix)
}

func (r suffixRule) Pattern() string {
	return escapeDots(r.suffix) + "$"
}

type containsRule struct {
	fragment string
}

func (r containsRule) Match(name string) bool {
	return strings.Contains(name, r.fragment)
}

func (r containsRule) Pattern() string {
	return escapeDots(r.fragment)
}

type prefixRule struct {
	prefix string
}

func (r prefixRule) Match(name string) bool {
	return strings.HasPrefix(name, r.prefix)
}

func (r prefixRule) Pattern() string {
	return "^" + escapeDots(r.prefix)
}

type domainRule struct {
	token string
}

func (r domainRule) Match(name string) bool {
	if strings.HasPrefix(name, r.token) {
		return true
	}
	return strings.Contains(name, "."+r.token)
}

func (r domainRule) Pattern() string {
	return escapeDots(r.token)
}

func escapeDots(s string) string {
	return strings.ReplaceAll(s, ".", `\.`)
}
