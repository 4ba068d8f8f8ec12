package limesurveyrc2api

import (
	"context"
	"errors"
	"iter"
)

// Participant represents a participant token record. The attribute
// names and value types are defined by the survey's token table (email,
// firstname, lastname, token fields, extended attributes) and are not
// validated locally.
type Participant map[string]any

// Condition restricts a participant listing, e.g.
// Condition{"email": "t1@test.com"}.
type Condition map[string]any

// defaultListLimit is the number of tokens retrieved per call when no
// limit is given.
const defaultListLimit = 1000

// noParticipantsStatus is reported when a page past the end of the
// token table is requested.
const noParticipantsStatus = "No survey participants found"

// ListParams represents listing parameters for [Client.Participants].
type ListParams struct {
	// Start is the index of the first token to retrieve.
	Start int
	// Limit is the number of tokens to retrieve, 1000 if zero.
	Limit int
	// IgnoreUsed skips tokens that have already been used.
	IgnoreUsed bool
	// Attributes names the extended attributes to include.
	Attributes []string
	// Conditions restrict the listing.
	Conditions []Condition
}

// Summary reports participant token counts for a survey.
type Summary struct {
	// TokenCount is the total number of tokens in the survey.
	TokenCount string `json:"token_count"`
	// TokenInvalid is the number of invalid tokens.
	TokenInvalid string `json:"token_invalid"`
	// TokenSent is the number of tokens with sent invitations.
	TokenSent string `json:"token_sent"`
	// TokenOptedOut is the number of opted-out tokens.
	TokenOptedOut string `json:"token_opted_out"`
	// TokenCompleted is the number of tokens with completed surveys.
	TokenCompleted string `json:"token_completed"`
}

// ParticipantProperties represents the token properties of a single
// participant.
type ParticipantProperties struct {
	// TID is the token ID within the survey.
	TID string `json:"tid"`
	// ParticipantID references the central participant database, if any.
	ParticipantID string `json:"participant_id"`
	MPID          string `json:"mpid"`
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	Email         string `json:"email"`
	EmailStatus   string `json:"emailstatus"`
	// Token is the participant's access credential for the survey.
	Token    string `json:"token"`
	Language string `json:"language"`
	// Blacklisted is "Y" when the participant is blacklisted.
	Blacklisted string `json:"blacklisted"`
	// Sent is "N" or the date the invitation was sent.
	Sent string `json:"sent"`
	// ReminderSent is "N" or the date the last reminder was sent.
	ReminderSent  string `json:"remindersent"`
	ReminderCount int    `json:"remindercount"`
	// Completed is "N", "Y", or the completion date.
	Completed string `json:"completed"`
	UsesLeft  int    `json:"usesleft"`
	// ValidFrom bounds the token validity period, unset if open.
	ValidFrom Time `json:"validfrom"`
	// ValidUntil bounds the token validity period, unset if open.
	ValidUntil Time `json:"validuntil"`
}

// Error statuses the API reports per participant method. Matching is
// exact; any other status on these methods is treated as payload.
var (
	addParticipantsStatuses = []string{
		"Error: Invalid survey ID",
		"No token table",
		"No permission",
	}
	deleteParticipantsStatuses = []string{
		"Error: Invalid survey ID",
		"Error: No token table",
		"No permission",
		"Invalid Session Key",
	}
	participantPropertiesStatuses = []string{
		"Error: Invalid survey ID",
		"Error: No token table",
		"Error: Invalid tokenid",
		"No permission",
		"Invalid Session Key",
	}
)

// Summary retrieves the participant token counts of a survey.
func (c *Client) Summary(ctx context.Context, surveyID int) (*Summary, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	params := rpcParams{
		{"sSessionKey", key},
		{"iSurveyID", surveyID},
	}

	result, err := invoke[Summary](ctx, c, "get_summary", params)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Participants lists the participants of a survey.
func (c *Client) Participants(ctx context.Context, surveyID int, params ListParams) ([]Participant, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	conditions := params.Conditions
	if conditions == nil {
		conditions = []Condition{}
	}

	rpc := rpcParams{
		{"sSessionKey", key},
		{"iSurveyID", surveyID},
		{"iStart", params.Start},
		{"iLimit", params.Limit},
		{"bUnused", params.IgnoreUsed},
		{"aAttributes", attributesValue(params.Attributes)},
		{"aConditions", conditions},
	}

	return invoke[[]Participant](ctx, c, "list_participants", rpc)
}

// ParticipantsIter returns an iterator over all participants of a
// survey, fetching pages of params.Limit tokens as needed. The end of
// the token table ends the iteration cleanly.
func (c *Client) ParticipantsIter(ctx context.Context, surveyID int, params ListParams) iter.Seq2[Participant, error] {
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}

	return iterate(ctx, params.Start, params.Limit, func(ctx context.Context, start, limit int) ([]Participant, error) {
		page := params
		page.Start = start
		page.Limit = limit

		items, err := c.Participants(ctx, surveyID, page)

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status == noParticipantsStatus {
			return nil, nil
		}

		return items, err
	})
}

// AddParticipants adds participants to a survey and returns the created
// records, including the generated token when createToken is true.
func (c *Client) AddParticipants(ctx context.Context, surveyID int, participants []Participant, createToken bool) ([]Participant, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	rpc := rpcParams{
		{"sSessionKey", key},
		{"iSurveyID", surveyID},
		{"aParticipantData", participants},
		{"bCreateToken", createToken},
	}

	return invoke[[]Participant](ctx, c, "add_participants", rpc, addParticipantsStatuses...)
}

// DeleteParticipants deletes participants by token ID from a survey and
// returns the deletion outcome per token ID.
func (c *Client) DeleteParticipants(ctx context.Context, surveyID int, tokenIDs []int) (map[string]string, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	rpc := rpcParams{
		{"sSessionKey", key},
		{"iSurveyID", surveyID},
		{"aTokenIDs", tokenIDs},
	}

	return invoke[map[string]string](ctx, c, "delete_participants", rpc, deleteParticipantsStatuses...)
}

// ParticipantProperties retrieves the token properties of a single
// participant.
func (c *Client) ParticipantProperties(ctx context.Context, surveyID, tokenID int) (*ParticipantProperties, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	rpc := rpcParams{
		{"sSessionKey", key},
		{"iSurveyID", surveyID},
		{"aTokenQueryProperties", map[string]int{"tid": tokenID}},
	}

	result, err := invoke[ParticipantProperties](ctx, c, "get_participant_properties", rpc, participantPropertiesStatuses...)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// attributesValue encodes the extended attribute selection. The API
// expects false, not an empty list, when no attributes are requested.
func attributesValue(attributes []string) any {
	if len(attributes) == 0 {
		return false
	}

	return attributes
}
