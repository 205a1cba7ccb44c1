package models

// EventsResponse is the body of the ledger events listing.
type EventsResponse struct {
	Events []LedgerEvent `json:"events"`
}

// RequestsResponse is the body of the per-address request listing.
type RequestsResponse struct {
	Requests []AnalysisRequest `json:"requests"`
}

// BlobRef is returned by the remote blob store after an upload.
type BlobRef struct {
	Ref string `json:"ref"`
}
