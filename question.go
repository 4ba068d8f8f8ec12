package limesurveyrc2api

import "context"

// Question describes a survey question as returned by list_questions.
// The API returns identifiers and flags as strings.
type Question struct {
	// QID is the question ID.
	QID string `json:"qid"`
	// ParentQID is the parent question ID, "0" for top-level questions.
	ParentQID string `json:"parent_qid"`
	// SID is the ID of the survey the question belongs to.
	SID string `json:"sid"`
	// GID is the ID of the question group.
	GID string `json:"gid"`
	// Type is the LimeSurvey question type code.
	Type string `json:"type"`
	// Title is the question code.
	Title string `json:"title"`
	// Question is the question text.
	Question string `json:"question"`
	// Help is the help text shown with the question.
	Help string `json:"help"`
	// Mandatory is "Y" when an answer is required.
	Mandatory string `json:"mandatory"`
	// Other is "Y" when the question accepts an "other" answer.
	Other string `json:"other"`
	// Language is the language of this question record.
	Language string `json:"language"`
	// QuestionOrder is the position within the group.
	QuestionOrder string `json:"question_order"`
}

// Questions lists the questions of a survey, optionally restricted to a
// question group (zero for all groups) and a language (empty for the
// survey's base language).
func (c *Client) Questions(ctx context.Context, surveyID, groupID int, language string) ([]Question, error) {
	key, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	params := rpcParams{
		{"sSessionKey", key},
		{"iSurveyID", surveyID},
		{"iGroupID", nullableInt(groupID)},
		{"sLanguage", nullableString(language)},
	}

	return invoke[[]Question](ctx, c, "list_questions", params)
}
