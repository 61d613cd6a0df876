package constants

// 订单行本地状态常量
const (
	LineStatusPending   = "Pending"
	LineStatusRequested = "Requested"
	LineStatusOrdered   = "Ordered"
	LineStatusReceived  = "Received"
	LineStatusCancelled = "Cancelled"
)

// 订单类型常量
const (
	OrderTypeDirectory = "Directory Order"
	OrderTypeCustom    = "Custom Request"
	OrderTypeCSV       = "CSV Order"
)

// 订单优先级常量
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// 看板远端状态常量（Monday 状态列文本）
const (
	BoardStatusNeedToOrder = "Need to Order"
	BoardStatusOrderedWait = "Ordered and Waiting"
	BoardStatusArrived     = "Product Arrived"
	BoardStatusCannotOrder = "Cannot Currently Order"
)

// CSV 快速下单固定值（WCP 批量导入单）
const (
	CSVOrderPartID        = "CSV-ORDER"
	CSVOrderPartName      = "WCP CSV Order"
	CSVOrderCategory      = "WCP Import"
	CSVOrderSupplier      = "WCP"
	CSVOrderSupplierLink  = "https://wcproducts.com/apps/quick-order"
	CSVOrderJustification = "CSV order - no justification"
)

// 自定义请求件号前缀
const CustomPartIDPrefix = "CUSTOM-"

// 订单编号前缀（ORD-YYYYMMDD-NNN）
const OrderNumberPrefix = "ORD"

// 异步任务类型常量
const (
	TaskSyncPush = "sync:push"
	TaskSyncPull = "sync:pull"
)

// 队列名称常量
const (
	QueueDefault = "default"
	QueueSync    = "sync"
)
