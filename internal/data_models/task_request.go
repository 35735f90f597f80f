package dto

// TaskRequestData is the body of create and update requests. Update
// replaces every field, so an omitted description or date clears it.
type TaskRequestData struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	CreationDate *string `json:"creation_date"`
	Completed    bool    `json:"completed"`
}
