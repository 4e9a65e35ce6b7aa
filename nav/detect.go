package nav

// SpanFunc resolves the cached span for an id during detection. ok=false
// means the section has no measurement; the search skips it.
type SpanFunc func(id SectionID) (Span, bool)

// Detect returns the section considered active at the given scroll position.
// The query point is scrollOffset+leadOffset; the lead offset compensates
// for a fixed header obscuring the top of the viewport. ids must be ordered
// by span start (the Registry ordering contract).
//
// Binary search over the ordered ids: a span containing the target wins
// immediately; otherwise the search narrows toward the target, carrying the
// closest section that ends at or before it as the candidate. When no span
// contains the target the candidate is returned, or ok=false when the target
// lies above every section.
func Detect(scrollOffset, leadOffset float64, ids []SectionID, span SpanFunc) (SectionID, bool) {
	target := scrollOffset + leadOffset

	var candidate SectionID
	found := false

	lo, hi := 0, len(ids)-1
	for lo <= hi {
		idx, s, ok := nearestMeasured(ids, lo, hi, (lo+hi)/2, span)
		if !ok {
			break
		}
		switch {
		case s.Contains(target):
			return ids[idx], true
		case target < s.Start:
			hi = idx - 1
		default: // target >= s.End
			candidate = ids[idx]
			found = true
			lo = idx + 1
		}
	}
	return candidate, found
}

// nearestMeasured probes outward from mid within [lo, hi] for an id the span
// source can resolve. Unmeasured ids are skipped rather than treated as
// errors; ok=false means the whole window is unmeasured.
func nearestMeasured(ids []SectionID, lo, hi, mid int, span SpanFunc) (int, Span, bool) {
	if s, ok := span(ids[mid]); ok {
		return mid, s, true
	}
	for step := 1; mid-step >= lo || mid+step <= hi; step++ {
		if right := mid + step; right <= hi {
			if s, ok := span(ids[right]); ok {
				return right, s, true
			}
		}
		if left := mid - step; left >= lo {
			if s, ok := span(ids[left]); ok {
				return left, s, true
			}
		}
	}
	return 0, Span{}, false
}

// DetectLinear is the straight-line reference implementation of Detect. It
// walks ids front to back and must agree with the binary search on every
// input; the detector tests diff the two against each other.
func DetectLinear(scrollOffset, leadOffset float64, ids []SectionID, span SpanFunc) (SectionID, bool) {
	target := scrollOffset + leadOffset

	var candidate SectionID
	found := false
	for _, id := range ids {
		s, ok := span(id)
		if !ok {
			continue
		}
		if target < s.Start {
			break
		}
		if target < s.End {
			return id, true
		}
		candidate = id
		found = true
	}
	return candidate, found
}
