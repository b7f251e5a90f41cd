package types

// Filter - параметры фильтрации и сортировки списков.
type Filter struct {
	Search string                 `json:"search,omitempty"`
	Sort   map[string]string      `json:"sort,omitempty"`
	Filter map[string]interface{} `json:"filter,omitempty"`
}

// http://localhost:8080/api/maintenance?filter[stage]=New,In Progress&filter[equipmentId]=3&sort[scheduledDate]=asc
