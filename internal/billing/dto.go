package billing

import "github.com/okpyo/crewledger/internal/ledger"

// LineItemInput is one charge row as submitted by the client
type LineItemInput struct {
	Label       string  `json:"label"`
	Amount      float64 `json:"amount"`
	TargetField string  `json:"target_field"`
}

// SaveDocumentRequest creates or replaces a draft billing document. The
// document ID is derived from the identity fields, never client-supplied.
type SaveDocumentRequest struct {
	YearMonth          string          `json:"year_month"`
	TeamID             int64           `json:"team_id"`
	TeamName           string          `json:"team_name"`
	IssuedToType       string          `json:"issued_to_type"`
	IssuedToWorkerID   int64           `json:"issued_to_worker_id"`
	IssuedToWorkerName string          `json:"issued_to_worker_name"`
	Memo               string          `json:"memo"`
	LineItems          []LineItemInput `json:"line_items"`
}

// ToDocument converts the request to a draft document
func (req *SaveDocumentRequest) ToDocument() *Document {
	doc := &Document{
		ID:                 DocumentID(req.TeamID, req.IssuedToType, req.IssuedToWorkerID, req.YearMonth),
		YearMonth:          req.YearMonth,
		TeamID:             req.TeamID,
		TeamName:           req.TeamName,
		IssuedToType:       req.IssuedToType,
		IssuedToWorkerID:   req.IssuedToWorkerID,
		IssuedToWorkerName: req.IssuedToWorkerName,
		Status:             StatusDraft,
		Memo:               req.Memo,
	}
	for _, item := range req.LineItems {
		doc.LineItems = append(doc.LineItems, &LineItem{
			Label:  item.Label,
			Amount: item.Amount,
			Target: ledger.Category(item.TargetField),
		})
	}
	return doc
}
