package domain

import "strings"

// TransitTimes maps a destination country to ship queue to average transit time.
// Keys are stored trimmed and lower-cased.
type TransitTimes map[string]map[string]string

// Set stores a transit time, normalizing both keys
func (t TransitTimes) Set(country, queue, transit string) {
	country = NormalizeTransitKey(country)
	queue = NormalizeTransitKey(queue)
	if t[country] == nil {
		t[country] = make(map[string]string)
	}
	t[country][queue] = strings.TrimSpace(transit)
}

// Lookup returns the transit time for a country and ship queue
func (t TransitTimes) Lookup(country, queue string) (string, bool) {
	queues, ok := t[NormalizeTransitKey(country)]
	if !ok {
		return "", false
	}
	v, ok := queues[NormalizeTransitKey(queue)]
	return v, ok
}

// NormalizeTransitKey trims and lower-cases a country or queue name
func NormalizeTransitKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
