package response

import "tourbook/internal/usecase/commands"

type BulkErrorResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type BulkResultResponse struct {
	Succeeded []string            `json:"succeeded"`
	Errors    []BulkErrorResponse `json:"errors"`
}

func FromBulkResult(r *commands.BulkResult) *BulkResultResponse {
	res := &BulkResultResponse{
		Succeeded: make([]string, len(r.SucceededIDs)),
		Errors:    make([]BulkErrorResponse, len(r.Errors)),
	}
	for i, id := range r.SucceededIDs {
		res.Succeeded[i] = id.String()
	}
	for i, e := range r.Errors {
		res.Errors[i] = BulkErrorResponse{ID: e.ID.String(), Error: e.Error}
	}
	return res
}
