package resolve

// ChoiceKind names what a choice request asks for.
type ChoiceKind string

const (
	// ChoicePlayCard asks the seat to pick cards from an allowed set.
	ChoicePlayCard ChoiceKind = "PLAY_CARD"
	// ChoiceSelectTarget asks the seat to pick target seats.
	ChoiceSelectTarget ChoiceKind = "SELECT_TARGET"
	// ChoiceOption asks the seat to pick one named option.
	ChoiceOption ChoiceKind = "OPTION"
	// ChoiceConfirm asks the seat a yes/no question.
	ChoiceConfirm ChoiceKind = "CONFIRM"
)

// Confirmation is the tri-state acknowledgement on a choice result.
type Confirmation string

const (
	Confirmed Confirmation = "CONFIRMED"
	Declined  Confirmation = "DECLINED"
	Passed    Confirmation = "PASSED"
)

// ChoiceRequest is the one boundary through which any decision enters
// the engine. The engine never inspects how the result was produced.
type ChoiceRequest struct {
	ID           string     `json:"id"`
	Seat         int        `json:"seat"`
	Kind         ChoiceKind `json:"kind"`
	AllowedCards []string   `json:"allowed_cards,omitempty"`
	AllowedSeats []int      `json:"allowed_seats,omitempty"`
	Options      []string   `json:"options,omitempty"`
	PassAllowed  bool       `json:"pass_allowed"`
	Prompt       string     `json:"prompt,omitempty"`
}

// ChoiceResult echoes the request id and carries the selection.
type ChoiceResult struct {
	RequestID    string       `json:"request_id"`
	CardIDs      []string     `json:"card_ids,omitempty"`
	Seats        []int        `json:"seats,omitempty"`
	Option       string       `json:"option,omitempty"`
	Confirmation Confirmation `json:"confirmation"`
}

// ChoiceCallback delivers a choice request to whoever decides and blocks
// until the result is available. The engine imposes no timeout; a host
// backing this with a network round-trip blocks the whole active chain
// for that duration.
type ChoiceCallback func(ChoiceRequest) (ChoiceResult, error)
