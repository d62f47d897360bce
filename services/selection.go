package services

import (
	"strconv"
	"strings"

	"device-catalog/models"
)

// Toggle removes id if it is selected, otherwise appends it while there
// is room. A full set is returned unchanged. The input is never modified.
func Toggle(set models.SelectionSet, id int) models.SelectionSet {
	if set.Contains(id) {
		return Remove(set, id)
	}
	if len(set) >= models.MaxSelection {
		return clone(set)
	}
	out := make(models.SelectionSet, len(set), len(set)+1)
	copy(out, set)
	return append(out, id)
}

// Remove drops id from the set, keeping the order of the others. An
// emptied set is returned as nil.
func Remove(set models.SelectionSet, id int) models.SelectionSet {
	if len(set) == 0 {
		return nil
	}
	out := make(models.SelectionSet, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CanSelect reports whether another device can be added.
func CanSelect(set models.SelectionSet) bool {
	return len(set) < models.MaxSelection
}

// PickResult is the outcome of Pick.
type PickResult struct {
	Set models.SelectionSet
	// Unmatched holds tokens that named no device in the snapshot.
	Unmatched []string
	// Dropped holds tokens that matched but arrived after the set was full.
	Dropped []string
}

// Pick adds one device per token to set. A numeric token selects that id.
// Any other token selects the first device whose model or brand contains
// it and that is not selected yet. Tokens naming a device already in the
// set are no-ops, so a repeated id never deselects.
func Pick(set models.SelectionSet, snap *models.Snapshot, tokens []string) PickResult {
	res := PickResult{Set: clone(set)}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		id, ok := pickID(res.Set, snap, tok)
		if !ok {
			res.Unmatched = append(res.Unmatched, tok)
			continue
		}
		if res.Set.Contains(id) {
			continue
		}
		if !CanSelect(res.Set) {
			res.Dropped = append(res.Dropped, tok)
			continue
		}
		res.Set = Toggle(res.Set, id)
	}
	if len(res.Set) == 0 {
		res.Set = nil
	}
	return res
}

func pickID(set models.SelectionSet, snap *models.Snapshot, tok string) (int, bool) {
	if id, err := strconv.Atoi(tok); err == nil {
		_, ok := snap.Lookup(id)
		return id, ok
	}

	var first models.Device
	found := false
	for _, d := range Filter(snap.Devices(), models.QuerySpec{SearchTerm: tok}, MatchModelOrBrand) {
		if !set.Contains(d.ID) {
			return d.ID, true
		}
		if !found {
			first, found = d, true
		}
	}
	return first.ID, found
}

// Resolve returns the selected devices in selection order. Ids missing
// from the snapshot are skipped.
func Resolve(set models.SelectionSet, snap *models.Snapshot) []models.Device {
	out := make([]models.Device, 0, len(set))
	for _, id := range set {
		if d, ok := snap.Lookup(id); ok {
			out = append(out, d)
		}
	}
	return out
}

func clone(set models.SelectionSet) models.SelectionSet {
	out := make(models.SelectionSet, len(set))
	copy(out, set)
	return out
}
