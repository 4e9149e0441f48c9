// Package schema defines the canonical output contract: the fixed, ordered
// set of field names every analyzed meeting record must populate, the "N/A"
// sentinel for missing values, and the alias table used to map provider
// output keys onto canonical names.
package schema

import "strings"

// NA is the placeholder for any missing or empty canonical field value.
const NA = "N/A"

// Canonical field names. Downstream consumers depend on this exact
// name/order contract; do not reorder or rename.
const (
	FieldDate             = "Date"
	FieldOwner            = "Owner (Who handled the meeting)"
	FieldSocietyName      = "Society Name"
	FieldMeetingType      = "Visit/Meeting Type"
	FieldClientName       = "Client Name"
	FieldContactNumber    = "Contact Number"
	FieldLocation         = "Location"
	FieldProjectName      = "Project Name"
	FieldDurationMinutes  = "Meeting Duration (Minutes)"
	FieldDealStatus       = "Deal Status"
	FieldDealStage        = "Deal Stage"
	FieldAmountValue      = "Amount Value"
	FieldPaymentTerms     = "Payment Terms"
	FieldBudgetDiscussed  = "Budget Discussed"
	FieldRequirements     = "Requirements Summary"
	FieldKeyPoints        = "Key Discussion Points"
	FieldClientConcerns   = "Client Concerns"
	FieldObjectionsRaised = "Objections Raised"
	FieldObjectionAnswers = "Objection Handling"
	FieldCompetitors      = "Competitor Mentions"
	FieldNextSteps        = "Next Steps"
	FieldFollowUpDate     = "Follow-up Date"
	FieldDecisionMaker    = "Decision Maker Present"
	FieldClientSentiment  = "Client Sentiment"
	FieldUrgencyLevel     = "Urgency Level"

	FieldRapportScore        = "Rapport Building Score"
	FieldNeedsDiscoveryScore = "Needs Discovery Score"
	FieldProductPitchScore   = "Product Pitch Score"
	FieldObjectionScore      = "Objection Handling Score"
	FieldClosingScore        = "Closing Score"
	FieldTotalScore          = "Total Score"
	FieldPercentScore        = "% Score"

	FieldStrengths        = "Strengths"
	FieldImprovements     = "Areas of Improvement"
	FieldActionItems      = "Action Items"
	FieldCommitments      = "Commitments Made"
	FieldRisks            = "Risks Identified"
	FieldOpportunities    = "Opportunities Identified"
	FieldClientQuestions  = "Client Questions"
	FieldPricingDiscussed = "Pricing Discussed"
	FieldDiscountAsked    = "Discount Requested"
	FieldSiteVisit        = "Site Visit Planned"
	FieldDocumentsShared  = "Documents Shared"
	FieldLanguage         = "Language"
	FieldCallQualityNotes = "Call Quality Notes"
	FieldSummary          = "Summary"
	FieldFileName         = "File Name"
	FieldFileID           = "File ID"
)

// Fields is the canonical column order of the result sink.
var Fields = []string{
	FieldDate,
	FieldOwner,
	FieldSocietyName,
	FieldMeetingType,
	FieldClientName,
	FieldContactNumber,
	FieldLocation,
	FieldProjectName,
	FieldDurationMinutes,
	FieldDealStatus,
	FieldDealStage,
	FieldAmountValue,
	FieldPaymentTerms,
	FieldBudgetDiscussed,
	FieldRequirements,
	FieldKeyPoints,
	FieldClientConcerns,
	FieldObjectionsRaised,
	FieldObjectionAnswers,
	FieldCompetitors,
	FieldNextSteps,
	FieldFollowUpDate,
	FieldDecisionMaker,
	FieldClientSentiment,
	FieldUrgencyLevel,
	FieldRapportScore,
	FieldNeedsDiscoveryScore,
	FieldProductPitchScore,
	FieldObjectionScore,
	FieldClosingScore,
	FieldTotalScore,
	FieldPercentScore,
	FieldStrengths,
	FieldImprovements,
	FieldActionItems,
	FieldCommitments,
	FieldRisks,
	FieldOpportunities,
	FieldClientQuestions,
	FieldPricingDiscussed,
	FieldDiscountAsked,
	FieldSiteVisit,
	FieldDocumentsShared,
	FieldLanguage,
	FieldCallQualityNotes,
	FieldSummary,
	FieldFileName,
	FieldFileID,
}

// SubScores are the five authored score fields. Total Score and % Score are
// derived from them, never authored independently.
var SubScores = []string{
	FieldRapportScore,
	FieldNeedsDiscoveryScore,
	FieldProductPitchScore,
	FieldObjectionScore,
	FieldClosingScore,
}

// aliases maps NormalizeKey(providerKey) -> canonical name for keys providers
// commonly emit instead of the canonical names. Keys are stored pre-normalized
// so a single lookup covers snake_case, camelCase and spaced variants.
var aliases = map[string]string{
	"owner":              FieldOwner,
	"ownername":          FieldOwner,
	"meetingowner":       FieldOwner,
	"handledby":          FieldOwner,
	"salesperson":        FieldOwner,
	"society":            FieldSocietyName,
	"meetingtype":        FieldMeetingType,
	"visittype":          FieldMeetingType,
	"client":             FieldClientName,
	"customername":       FieldClientName,
	"phone":              FieldContactNumber,
	"phonenumber":        FieldContactNumber,
	"mobile":             FieldContactNumber,
	"project":            FieldProjectName,
	"duration":           FieldDurationMinutes,
	"durationminutes":    FieldDurationMinutes,
	"meetingduration":    FieldDurationMinutes,
	"status":             FieldDealStatus,
	"stage":              FieldDealStage,
	"amount":             FieldAmountValue,
	"dealvalue":          FieldAmountValue,
	"budget":             FieldBudgetDiscussed,
	"requirements":       FieldRequirements,
	"discussionpoints":   FieldKeyPoints,
	"keypoints":          FieldKeyPoints,
	"concerns":           FieldClientConcerns,
	"objections":         FieldObjectionsRaised,
	"competitors":        FieldCompetitors,
	"followup":           FieldNextSteps,
	"followupdate":       FieldFollowUpDate,
	"sentiment":          FieldClientSentiment,
	"urgency":            FieldUrgencyLevel,
	"rapportscore":       FieldRapportScore,
	"discoveryscore":     FieldNeedsDiscoveryScore,
	"pitchscore":         FieldProductPitchScore,
	"objectionscore":     FieldObjectionScore,
	"closescore":         FieldClosingScore,
	"total":              FieldTotalScore,
	"totalscore":         FieldTotalScore,
	"score":              FieldTotalScore,
	"percentscore":       FieldPercentScore,
	"scorepercent":       FieldPercentScore,
	"percentage":         FieldPercentScore,
	"improvements":       FieldImprovements,
	"areasofimprovement": FieldImprovements,
	"actions":            FieldActionItems,
	"risks":              FieldRisks,
	"opportunities":      FieldOpportunities,
	"pricing":            FieldPricingDiscussed,
	"discount":           FieldDiscountAsked,
	"sitevisit":          FieldSiteVisit,
	"documents":          FieldDocumentsShared,
	"notes":              FieldCallQualityNotes,
	"meetingsummary":     FieldSummary,
	"filename":           FieldFileName,
	"fileid":             FieldFileID,
}

// canonicalSet and normalizedCanonical are lookup indexes built once from Fields.
var (
	canonicalSet        = make(map[string]struct{}, len(Fields))
	normalizedCanonical = make(map[string]string, len(Fields))
)

func init() {
	for _, f := range Fields {
		canonicalSet[f] = struct{}{}
		normalizedCanonical[NormalizeKey(f)] = f
	}
}

// NormalizeKey lowercases a key and strips spaces and underscores, the fuzzy
// form used for alias and canonical-name matching.
func NormalizeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for _, r := range strings.ToLower(strings.TrimSpace(k)) {
		switch r {
		case ' ', '_', '\t':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve maps an input key to a canonical field name. Match order: exact
// canonical name, then alias table, then normalized canonical name. Returns
// false for keys that belong to no canonical field.
func Resolve(key string) (string, bool) {
	if _, ok := canonicalSet[key]; ok {
		return key, true
	}
	norm := NormalizeKey(key)
	if c, ok := aliases[norm]; ok {
		return c, true
	}
	if c, ok := normalizedCanonical[norm]; ok {
		return c, true
	}
	return "", false
}

// Record is a canonical record: exactly the Fields key set, values stringified,
// absent values set to the NA sentinel. Construct via NewRecord or
// normalizer.Coerce to keep the invariant.
type Record map[string]string

// NewRecord returns a record with every canonical field set to NA.
func NewRecord() Record {
	r := make(Record, len(Fields))
	for _, f := range Fields {
		r[f] = NA
	}
	return r
}

// Row returns the record's values in canonical field order.
func (r Record) Row() []string {
	row := make([]string, len(Fields))
	for i, f := range Fields {
		if v, ok := r[f]; ok {
			row[i] = v
		} else {
			row[i] = NA
		}
	}
	return row
}

// IsEmpty reports whether every field still holds the NA sentinel.
func (r Record) IsEmpty() bool {
	for _, v := range r {
		if v != NA {
			return false
		}
	}
	return true
}
