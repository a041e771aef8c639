package bill

import "strings"

// Classify derives a bill's life-cycle status from the weakly
// structured feed columns, first match wins:
//
//  1. governor action ("Approved"/"Signed" → signed, "Vetoed" → vetoed)
//  2. chamber passage flags (both → passed both, else whichever is "Y")
//  3. substring heuristics on the most recent chamber action text
//  4. Pending
//
// The substring checks are case-sensitive literal matches on phrases
// the LIS feed is known to use. Novel phrasings fall through to
// weaker buckets or Pending; that is an accepted trade-off, not a bug.
func Classify(row RawBillRow) Status {
	gov := strings.TrimSpace(row.GovernorAction)
	if gov != "" {
		if strings.Contains(gov, "Approved") || strings.Contains(gov, "Signed") {
			return StatusSignedIntoLaw
		}
		if strings.Contains(gov, "Vetoed") {
			return StatusVetoed
		}
	}

	passedHouse := row.PassedHouse == "Y"
	passedSenate := row.PassedSenate == "Y"
	switch {
	case passedHouse && passedSenate:
		return StatusPassedBoth
	case passedHouse:
		return StatusPassedHouse
	case passedSenate:
		return StatusPassedSenate
	}

	// House action preferred when both chambers have one.
	action := row.LastHouseAction
	if strings.TrimSpace(action) == "" {
		action = row.LastSenateAction
	}

	switch {
	case strings.Contains(action, "Left in"):
		return StatusLeftInCommittee
	case strings.Contains(action, "Continued to"):
		return StatusContinued
	case strings.Contains(action, "Failed"), strings.Contains(action, "Defeated"):
		return StatusFailed
	case strings.Contains(action, "Committee"), strings.Contains(action, "Referred"):
		return StatusInCommittee
	}

	return StatusPending
}
