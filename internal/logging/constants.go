package logging

// Standardized field names for structured logging. Using these constants
// keeps log output consistent and easy to filter.
const (
	FieldObligationID  = "obligation_id"
	FieldAccountID     = "account_id"
	FieldTransactionID = "transaction_id"
	FieldSeriesID      = "series_id"
	FieldStatus        = "status"
	FieldScore         = "score"
	FieldSeverity      = "severity"
	FieldCount         = "count"
	FieldOperation     = "operation"
	FieldFile          = "file_path"
)
