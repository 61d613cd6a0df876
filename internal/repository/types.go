package repository

// PartListFilter 查询零件目录的过滤条件
type PartListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Subcategory   string
	Type          string
	Supplier      string
	Search        string
	OnlyInventory bool
}

// OrderLineListFilter 查询订单行的过滤条件
type OrderLineListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNumber string
	StudentName string
	Department  string
}
