// internal/workers/data-access/query-listings/models.go
package querylistings

type Input struct {
	QueryType    string                 `json:"queryType"`
	CategoryID   string                 `json:"categoryId,omitempty"`
	SpecialistID string                 `json:"specialistId,omitempty"`
	RequesterID  string                 `json:"requesterId,omitempty"`
	Filters      map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"`
}
