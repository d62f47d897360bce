package services

import (
	"sort"
	"strings"

	"device-catalog/models"
)

// MatchMode selects which text fields the search term is tested against.
type MatchMode int

const (
	// MatchModel tests the model name only (catalog table).
	MatchModel MatchMode = iota
	// MatchModelOrBrand tests model or brand (comparison picker).
	MatchModelOrBrand
)

// Matches reports whether d satisfies every active predicate in spec.
// Predicates combine with AND; set dimensions accept any listed value.
func Matches(d models.Device, spec models.QuerySpec, mode MatchMode) bool {
	if spec.SearchTerm != "" && !matchesSearch(d, strings.ToLower(spec.SearchTerm), mode) {
		return false
	}
	if len(spec.Brands) > 0 && !contains(spec.Brands, d.Brand) {
		return false
	}
	if len(spec.OperatingSystems) > 0 && !contains(spec.OperatingSystems, d.OS) {
		return false
	}
	if spec.MinPrice != nil && !atLeast(d.Price, *spec.MinPrice) {
		return false
	}
	if spec.MaxPrice != nil && !atMost(d.Price, *spec.MaxPrice) {
		return false
	}
	if spec.MinRAM != nil && !atLeast(d.RAM, *spec.MinRAM) {
		return false
	}
	return true
}

// Filter returns the devices matching spec, in source order. spec.Page is
// ignored; paginate the result separately. An empty spec returns devices
// itself, so the result must be treated as read-only.
func Filter(devices []models.Device, spec models.QuerySpec, mode MatchMode) []models.Device {
	if spec.IsEmpty() {
		return devices
	}
	out := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		if Matches(d, spec, mode) {
			out = append(out, d)
		}
	}
	return out
}

// Facets lists the distinct brands and operating systems, each sorted,
// for building filter option lists.
func Facets(devices []models.Device) (brands, operatingSystems []string) {
	return distinctSorted(devices, func(d models.Device) string { return d.Brand }),
		distinctSorted(devices, func(d models.Device) string { return d.OS })
}

func matchesSearch(d models.Device, term string, mode MatchMode) bool {
	if strings.Contains(strings.ToLower(d.Model), term) {
		return true
	}
	return mode == MatchModelOrBrand && strings.Contains(strings.ToLower(d.Brand), term)
}

// NaN compares false against everything, so a failed parse never
// satisfies a bound.
func atLeast(v, bound float64) bool { return v >= bound }

func atMost(v, bound float64) bool { return v <= bound }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func distinctSorted(devices []models.Device, key func(models.Device) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, d := range devices {
		k := key(d)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
