package dto

// ImportResponse reports a completed CSV/XLSX upload: how many rows were
// upserted and the collection as re-read after the write.
type ImportResponse struct {
	Imported int `json:"imported"`
	// Records holds the refreshed collection ([]model.StockItem etc. —
	// whichever collection was imported into).
	Records any `json:"records"`
}
