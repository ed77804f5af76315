package senate

import (
	"encoding/json"

	"rollcall/internal/votes/polyvalue"
)

// Raw Senate LIS layout. Only consumed fields are declared.

type document struct {
	RollCallVote json.RawMessage `json:"roll_call_vote"`
}

type rollCallVote struct {
	Congress            polyvalue.Value `json:"congress"`
	Session             polyvalue.Value `json:"session"`
	CongressYear        polyvalue.Value `json:"congress_year"`
	VoteNumber          polyvalue.Value `json:"vote_number"`
	VoteDate            polyvalue.Value `json:"vote_date"`
	ModifyDate          polyvalue.Value `json:"modify_date"`
	VoteQuestionText    polyvalue.Value `json:"vote_question_text"`
	VoteDocumentText    polyvalue.Value `json:"vote_document_text"`
	VoteResultText      polyvalue.Value `json:"vote_result_text"`
	Question            polyvalue.Value `json:"question"`
	VoteTitle           polyvalue.Value `json:"vote_title"`
	MajorityRequirement polyvalue.Value `json:"majority_requirement"`
	VoteResult          polyvalue.Value `json:"vote_result"`
	Document            documentField   `json:"document"`
	Amendment           amendmentField  `json:"amendment"`
	Count               *count          `json:"count"`
	TieBreaker          *tieBreaker     `json:"tie_breaker"`
	Members             *members        `json:"members"`
}

// bill is one entry of the document field. Absent members encode as null so
// every normalised entry has the same keys.
type bill struct {
	Congress   polyvalue.Value `json:"document_congress"`
	Type       polyvalue.Value `json:"document_type"`
	Number     polyvalue.Value `json:"document_number"`
	Name       polyvalue.Value `json:"document_name"`
	Title      polyvalue.Value `json:"document_title"`
	ShortTitle polyvalue.Value `json:"document_short_title"`
}

type amendment struct {
	Number                 polyvalue.Value `json:"amendment_number"`
	ToAmendmentNumber      polyvalue.Value `json:"amendment_to_amendment_number"`
	ToAmendmentToAmendment polyvalue.Value `json:"amendment_to_amendment_to_amendment_number"`
	ToDocumentNumber       polyvalue.Value `json:"amendment_to_document_number"`
	ToDocumentShortTitle   polyvalue.Value `json:"amendment_to_document_short_title"`
	Purpose                polyvalue.Value `json:"amendment_purpose"`
}

type count struct {
	Yeas    polyvalue.Lenient `json:"yeas"`
	Nays    polyvalue.Lenient `json:"nays"`
	Present polyvalue.Lenient `json:"present"`
	Absent  polyvalue.Lenient `json:"absent"`
}

type tieBreaker struct {
	ByWhom polyvalue.Value `json:"by_whom"`
	Vote   polyvalue.Value `json:"tie_breaker_vote"`
}

type members struct {
	// Member is nil when the block carries no member array at all, and
	// empty (non-nil) for an explicit [].
	Member []member `json:"member"`
}

type member struct {
	MemberFull  *string   `json:"member_full"`
	LastName    *string   `json:"last_name"`
	FirstName   *string   `json:"first_name"`
	Party       *string   `json:"party"`
	State       *string   `json:"state"`
	VoteCast    castField `json:"vote_cast"`
	LISMemberID *string   `json:"lis_member_id"`
}

type voteCast struct {
	Content *string `json:"content"`
	Pair    *string `json:"pair"`
}

var (
	billKeys      = []string{"document_congress", "document_type", "document_number", "document_name", "document_title", "document_short_title"}
	amendmentKeys = []string{"amendment_number", "amendment_to_amendment_number", "amendment_to_amendment_to_amendment_number", "amendment_to_document_number", "amendment_to_document_short_title", "amendment_purpose"}

	castShapes = []polyvalue.Shape{
		polyvalue.ObjectShape[voteCast]("vote_cast", "content", "pair"),
	}
	billShapes = []polyvalue.Shape{
		polyvalue.ObjectShape[bill]("document", billKeys...),
		polyvalue.ListShape[bill]("documents", billKeys...),
	}
	amendmentShapes = []polyvalue.Shape{
		polyvalue.ObjectShape[amendment]("amendment", amendmentKeys...),
		polyvalue.ListShape[amendment]("amendments", amendmentKeys...),
	}
)

// The field types below decode with the domain profile. A key missing from
// the document leaves them absent.

type castField struct{ polyvalue.Specific }

func (f *castField) UnmarshalJSON(raw []byte) (err error) {
	f.Specific, err = polyvalue.DecodeSpecific(raw, castShapes...)
	return err
}

type documentField struct{ polyvalue.Specific }

func (f *documentField) UnmarshalJSON(raw []byte) (err error) {
	f.Specific, err = polyvalue.DecodeSpecific(raw, billShapes...)
	return err
}

// entries flattens the field to a list. ok is false when the field was
// present but matched neither shape.
func (f documentField) entries() ([]bill, bool) {
	if one, ok := polyvalue.As[bill](f.Specific); ok {
		return []bill{one}, true
	}
	if many, ok := polyvalue.As[[]bill](f.Specific); ok {
		return many, true
	}
	return nil, false
}

type amendmentField struct{ polyvalue.Specific }

func (f *amendmentField) UnmarshalJSON(raw []byte) (err error) {
	f.Specific, err = polyvalue.DecodeSpecific(raw, amendmentShapes...)
	return err
}

func (f amendmentField) entries() ([]amendment, bool) {
	if one, ok := polyvalue.As[amendment](f.Specific); ok {
		return []amendment{one}, true
	}
	if many, ok := polyvalue.As[[]amendment](f.Specific); ok {
		return many, true
	}
	return nil, false
}

// details is the Senate-only remainder stored as JSON alongside the common
// vote columns.
type details struct {
	CongressYear   string `json:"congress_year"`
	VoteResultText string `json:"vote_result_text"`
}
