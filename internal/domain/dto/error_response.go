package dto

import (
	"errors"
	"time"

	"github.com/guttosm/tradeledger/internal/report"
)

// ErrorResponse is the JSON envelope returned for every failed request.
//
// Kind, Line and Column are set for report errors so the client can point at
// the offending ledger row and column. Source names the ingested file when the
// row came from the ledger store.
type ErrorResponse struct {
	Message      string    `json:"message" example:"malformed ledger"`
	ErrorDetails string    `json:"error,omitempty" example:"malformed input at line 3 column \"trade_date\" (value \"2024-13-01\"): unparseable date"`
	Kind         string    `json:"kind,omitempty" example:"MalformedInput"`
	Source       string    `json:"source,omitempty" example:"2024-03.csv"`
	Line         int       `json:"line,omitempty" example:"3"`
	Column       string    `json:"column,omitempty" example:"trade_date"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// NewReportErrorResponse builds an ErrorResponse for an error returned while
// producing a report, filling Kind and the row/column of malformed input.
func NewReportErrorResponse(message string, err error) ErrorResponse {
	resp := NewErrorResponse(message, err)
	resp.Kind = string(report.KindOf(err))

	var mErr *report.MalformedInputError
	if errors.As(err, &mErr) {
		resp.Source = mErr.Source
		resp.Line = mErr.Line
		resp.Column = mErr.Column
	}
	return resp
}
