// Package whitelist implements the default-deny policy for NTP server
// names: a fixed approved set of public pools, guarded by an ordered block
// list that is evaluated first so a block match always wins.
package whitelist

import (
	"net/netip"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// MaxNameLen is the longest accepted server name, matching the DNS limit.
const MaxNameLen = 255

// defaultApproved is the fixed allow list. Order matters:
// list_approved_servers displays entries in this order.
var defaultApproved = []string{
	// Global public servers
	"pool.ntp.org",
	"time.google.com",
	"time.cloudflare.com",
	"time.nist.gov",
	"time.windows.com",
	"time.apple.com",
	"ntp.ubuntu.com",

	// Regional pools
	"0.pool.ntp.org",
	"1.pool.ntp.org",
	"2.pool.ntp.org",
	"3.pool.ntp.org",
	"north-america.pool.ntp.org",
	"europe.pool.ntp.org",
	"asia.pool.ntp.org",
	"oceania.pool.ntp.org",
	"south-america.pool.ntp.org",
	"africa.pool.ntp.org",

	// US pools
	"0.us.pool.ntp.org",
	"1.us.pool.ntp.org",
	"2.us.pool.ntp.org",
	"3.us.pool.ntp.org",

	// EU pools
	"0.europe.pool.ntp.org",
	"1.europe.pool.ntp.org",
	"2.europe.pool.ntp.org",
	"3.europe.pool.ntp.org",
}

var hostnameRE = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// DefaultApproved returns the ordered approved server list.
func DefaultApproved() []string {
	out := make([]string, len(defaultApproved))
	copy(out, defaultApproved)
	return out
}

// Validator classifies candidate server names as approved or blocked. It
// holds only immutable state and is safe for concurrent use.
type Validator struct {
	approved    []string
	approvedSet map[string]struct{}
	rules       []Rule
}

// New returns a Validator enforcing the given approved list and block
// rules. Approved names are matched in their normalized form.
func New(approved []string, rules []Rule) *Validator {
	v := &Validator{
		approved:    approved,
		approvedSet: make(map[string]struct{}, len(approved)),
		rules:       rules,
	}
	for _, name := range approved {
		v.approvedSet[strings.ToLower(name)] = struct{}{}
	}
	return v
}

// NewDefault returns the production validator: the approved public NTP
// pools guarded by the default block rules.
func NewDefault() *Validator {
	return New(DefaultApproved(), DefaultRules())
}

// Approved returns the approved server names in display order.
func (v *Validator) Approved() []string {
	out := make([]string, len(v.approved))
	copy(out, v.approved)
	return out
}

// Validate normalizes name and classifies it. On success it returns the
// canonical (lowercase ASCII) form to be used for the network query.
//
// Checks run in a fixed sequence: literal IP rejection, hostname format,
// block rules, then the allow lookup. Block rules run before the allow
// lookup, so a pattern match wins even for a name that also appears in the
// approved set.
func (v *Validator) Validate(name string) (string, error) {
	norm, err := Normalize(name)
	if err != nil {
		return "", err
	}
	if len(norm) > MaxNameLen {
		return "", ErrInvalidFormat{Name: norm}
	}
	if kind, ok := ipLiteral(norm); ok {
		return "", ErrIPAddress{Name: norm, Kind: kind}
	}
	if !hostnameRE.MatchString(norm) {
		return "", ErrInvalidFormat{Name: norm}
	}
	for _, r := range v.rules {
		if r.Match(norm) {
			return "", ErrBlockedPattern{Name: norm, Pattern: r.Pattern()}
		}
	}
	if _, ok := v.approvedSet[norm]; !ok {
		return "", ErrNotApproved{Name: norm}
	}
	return norm, nil
}

// Normalize canonicalizes a candidate name: trims whitespace and trailing
// dots, lowercases, rejects empty labels, and converts internationalized
// names to ASCII (punycode).
func Normalize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	raw := name
	name = strings.ToLower(name)
	name = strings.TrimRight(name, ".")
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return "", ErrInvalidEncoding{Name: raw, Source: errEmptyLabel}
		}
	}
	ascii, err := idna.ToASCII(name)
	if err != nil {
		return "", ErrInvalidEncoding{Name: raw, Source: err}
	}
	return ascii, nil
}

func ipLiteral(name string) (string, bool) {
	addr, err := netip.ParseAddr(name)
	if err != nil {
		return "", false
	}
	// v4-mapped v6 forms report as IPv6, matching how they parse
	if addr.Is4() {
		return "IPv4Address", true
	}
	return "IPv6Address", true
}
