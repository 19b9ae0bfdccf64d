package matching

// FailureReason enumerates why a descriptor could not be matched. The values
// are stable identifiers; reports and downstream consumers key on them.
type FailureReason string

const (
	// FailureMissingMake means the descriptor has no make.
	FailureMissingMake FailureReason = "MISSING_MAKE"
	// FailureMissingModel means the descriptor has no model.
	FailureMissingModel FailureReason = "MISSING_MODEL"
	// FailureMissingYear means the descriptor has no usable model year.
	FailureMissingYear FailureReason = "MISSING_YEAR"
	// FailureNoVehicleData means the descriptor carries nothing to match on.
	FailureNoVehicleData FailureReason = "NO_VEHICLE_DATA"
	// FailureVINDecodeFailed means a VIN was present but decoding did not
	// complete the make/model/year triple.
	FailureVINDecodeFailed FailureReason = "VIN_DECODE_FAILED"
	// FailureNoMatchResult means every attempted tier came up empty.
	FailureNoMatchResult FailureReason = "NO_MATCH_RESULT"
	// FailureException means the match panicked and was recovered.
	FailureException FailureReason = "EXCEPTION_ERROR"
	// FailureNoPartData means the part descriptor carries nothing to match on.
	FailureNoPartData FailureReason = "NO_PART_DATA"
	// FailureNoKeywordMatch means the keyword tier ran with zero token
	// overlap and no later tier rescued the record.
	FailureNoKeywordMatch FailureReason = "NO_KEYWORD_MATCH"
)

// Tier names, in the order the matchers attempt them.
const (
	TierAccelerated = "accelerated"
	TierExact       = "exact"
	TierAlias       = "alias"
	TierFuzzy       = "fuzzy"
	TierDescription = "description"
	TierKeyword     = "keyword"
	TierAttribute   = "attribute"
)
