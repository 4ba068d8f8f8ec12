package limesurveyrc2api

import "context"

// Survey describes a survey as returned by list_surveys. The API
// returns identifiers and flags as strings.
type Survey struct {
	// SID is the survey ID.
	SID string `json:"sid"`
	// Title is the survey title in its base language.
	Title string `json:"surveyls_title"`
	// StartDate is when the survey opens, unset if not scheduled.
	StartDate Time `json:"startdate"`
	// Expires is when the survey closes, unset if not scheduled.
	Expires Time `json:"expires"`
	// Active is "Y" when the survey is active.
	Active string `json:"active"`
}

// Surveys lists the surveys the given user may access. An empty
// username lists the surveys of the session user.
func (c *Client) Surveys(ctx context.Context, username string) ([]Survey, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	params := rpcParams{
		{"sSessionKey", key},
		{"sUsername", nullableString(username)},
	}

	return invoke[[]Survey](ctx, c, "list_surveys", params)
}
