package engine

import "github.com/nutrigrade/nutrigrade/pkg/additive"

// DeriveVerdict reduces per-additive statuses to a product verdict.
// Only the set of statuses matters, not their order or counts.
//
// Rule priority:
//  1. No details - unknown
//  2. Any banned additive - non_compliant
//  3. Any restricted additive - partially_compliant
//  4. Any unresolved additive - unknown
//  5. Everything permitted - compliant
//
// Rule 4 goes before rule 5: an unresolved code is not enough information
// to certify compliance.
func DeriveVerdict(details []additive.Detail) additive.Verdict {
	if len(details) == 0 {
		return additive.UnknownCompliance
	}

	seen := make(map[additive.Status]bool)
	for _, d := range details {
		seen[d.Status] = true
	}

	switch {
	case seen[additive.Banned]:
		return additive.NonCompliant
	case seen[additive.Restricted]:
		return additive.PartiallyCompliant
	case seen[additive.Unknown]:
		return additive.UnknownCompliance
	case seen[additive.Permitted]:
		return additive.Compliant
	default:
		return additive.UnknownCompliance
	}
}
