package services

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"device-catalog/models"
)

// Keys of the shareable query-state encoding.
const (
	KeySearch   = "search"
	KeyBrands   = "brands"
	KeyOS       = "os"
	KeyMinPrice = "minPrice"
	KeyMaxPrice = "maxPrice"
	KeyMinRAM   = "minRAM"
	KeyPage     = "page"
)

// keyOrder is the fixed output order of Encode.
var keyOrder = []string{KeySearch, KeyBrands, KeyOS, KeyMinPrice, KeyMaxPrice, KeyMinRAM, KeyPage}

const listSeparator = ","

// Param is one key/value pair of an encoded QuerySpec.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered encoding of a QuerySpec.
type Params []Param

// Map returns the params as a plain lookup, the form Decode accepts.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}

// String renders the params as a query string in key order. url.Values
// would sort the keys alphabetically.
func (p Params) String() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Encode produces the minimal encoding of spec: fields at their default
// value are omitted and set members are sorted, so equal specs always
// encode identically.
func Encode(spec models.QuerySpec) Params {
	c := Canonical(spec)
	values := map[string]string{}

	if c.SearchTerm != "" {
		values[KeySearch] = c.SearchTerm
	}
	if len(c.Brands) > 0 {
		values[KeyBrands] = joinList(c.Brands)
	}
	if len(c.OperatingSystems) > 0 {
		values[KeyOS] = joinList(c.OperatingSystems)
	}
	if c.MinPrice != nil {
		values[KeyMinPrice] = formatInt(*c.MinPrice)
	}
	if c.MaxPrice != nil {
		values[KeyMaxPrice] = formatInt(*c.MaxPrice)
	}
	if c.MinRAM != nil {
		values[KeyMinRAM] = formatInt(*c.MinRAM)
	}
	if c.Page > 1 {
		values[KeyPage] = strconv.Itoa(c.Page)
	}

	out := make(Params, 0, len(values))
	for _, k := range keyOrder {
		if v, ok := values[k]; ok {
			out = append(out, Param{Key: k, Value: v})
		}
	}
	return out
}

// Decode builds a QuerySpec from an encoded form. Missing keys take their
// default, unknown keys are ignored and malformed numbers are left unset.
func Decode(params map[string]string) models.QuerySpec {
	spec := models.QuerySpec{
		SearchTerm:       params[KeySearch],
		Brands:           splitList(params[KeyBrands]),
		OperatingSystems: splitList(params[KeyOS]),
		MinPrice:         parseBound(params[KeyMinPrice]),
		MaxPrice:         parseBound(params[KeyMaxPrice]),
		MinRAM:           parseBound(params[KeyMinRAM]),
		Page:             1,
	}
	if p, err := strconv.Atoi(strings.TrimSpace(params[KeyPage])); err == nil && p > 1 {
		spec.Page = p
	}
	return Canonical(spec)
}

// EncodeQuery is Encode rendered as a URL query string.
func EncodeQuery(spec models.QuerySpec) string {
	return Encode(spec).String()
}

// DecodeQuery parses a URL query string (with or without a leading '?').
// Only a syntactically broken query string is an error. For repeated
// keys the first value wins.
func DecodeQuery(raw string) (models.QuerySpec, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return models.QuerySpec{}, fmt.Errorf("codec: parse query %q: %w", raw, err)
	}
	m := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return Decode(m), nil
}

// Canonical returns the normal form of spec that the encoding can
// represent: sets sorted and de-duplicated (nil when empty), bounds
// truncated to integers and page at least 1.
func Canonical(spec models.QuerySpec) models.QuerySpec {
	out := models.QuerySpec{
		SearchTerm:       spec.SearchTerm,
		Brands:           normaliseSet(spec.Brands),
		OperatingSystems: normaliseSet(spec.OperatingSystems),
		MinPrice:         truncBound(spec.MinPrice),
		MaxPrice:         truncBound(spec.MaxPrice),
		MinRAM:           truncBound(spec.MinRAM),
		Page:             spec.Page,
	}
	if out.Page < 1 {
		out.Page = 1
	}
	return out
}

// memberEscaper protects the separator inside set members, so a name
// like "Google, Inc" survives the round trip.
var memberEscaper = strings.NewReplacer("%", "%25", listSeparator, "%2C")

func joinList(members []string) string {
	escaped := make([]string, len(members))
	for i, m := range members {
		escaped[i] = memberEscaper.Replace(m)
	}
	return strings.Join(escaped, listSeparator)
}

// splitList reverses joinList. A token that is not validly escaped is
// kept as written.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(raw, listSeparator) {
		if tok == "" {
			continue
		}
		if m, err := url.PathUnescape(tok); err == nil {
			tok = m
		}
		out = append(out, tok)
	}
	return out
}

func normaliseSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func parseBound(raw string) *float64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return models.Bound(float64(n))
}

// Limits of the integer bound encoding. maxBound is the largest float64
// below 2^63, so it converts to int64 exactly.
var (
	minBound = float64(math.MinInt64)
	maxBound = math.Nextafter(float64(math.MaxInt64), 0)
)

// truncBound drops non-finite bounds and clamps the rest into the int64
// range, which is all the integer encoding can carry.
func truncBound(b *float64) *float64 {
	if b == nil || math.IsNaN(*b) || math.IsInf(*b, 0) {
		return nil
	}
	v := math.Trunc(*b)
	switch {
	case v < minBound:
		v = minBound
	case v > maxBound:
		v = maxBound
	}
	return models.Bound(v)
}

func formatInt(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}
