package board

import "github.com/denhamvenom/inventoryapp/internal/constants"

// 主项列 ID（Supply Ordering System 看板）
const (
	MainColStatus      = "status"
	MainColPriority    = "text_mkx8wrtc"
	MainColOrderType   = "text_mkx8vbtc"
	MainColDepartment  = "text_mkx8mnp"
	MainColStudentName = "text_mkx812a8"
	MainColDate        = "date_mkx83bc6"
)

// 子项列 ID
const (
	SubColPartName      = "text_mkx8naek"
	SubColQuantity      = "numeric_mkx8t4fc"
	SubColTotalCost     = "numeric_mkx86w0v"
	SubColProductCode   = "text_mkx8jape"
	SubColSupplier      = "text_mkx8czzy"
	SubColSupplierLink  = "link_mkx89c62"
	SubColJustification = "text_mkx8exde"
	SubColNotes         = "long_text_mkx8kp09"
	SubColCSVFileLink   = "link_mkx86fgc"
)

// statusMapping 看板状态文本到本地状态的固定词表
var statusMapping = map[string]string{
	constants.BoardStatusNeedToOrder: constants.LineStatusRequested,
	constants.BoardStatusOrderedWait: constants.LineStatusOrdered,
	constants.BoardStatusArrived:     constants.LineStatusReceived,
	constants.BoardStatusCannotOrder: constants.LineStatusCancelled,
}

// MapStatus 将看板状态文本映射为本地状态。
// 词表之外的文本原样透传，保持对看板新增状态的前向兼容。
func MapStatus(remote string) string {
	if local, ok := statusMapping[remote]; ok {
		return local
	}
	return remote
}

// SubitemFields 按订单类型区分的子项可选列集合
type SubitemFields interface {
	isSubitemFields()
}

// DirectoryFields 目录订单子项列：供应商、订购链接、产品编码与采购理由
type DirectoryFields struct {
	Supplier      string
	SupplierLink  string
	ProductCode   string
	Justification string
}

// CustomFields 自定义请求子项列：供应商与零件参考链接
type CustomFields struct {
	Supplier      string
	PartLink      string
	Justification string
}

// CSVFields CSV 订单子项列：固定供应商标签、快速下单链接与 CSV 文件链接
type CSVFields struct {
	QuickOrderLink string
	CSVFileLink    string
}

func (DirectoryFields) isSubitemFields() {}
func (CustomFields) isSubitemFields()    {}
func (CSVFields) isSubitemFields()       {}

// subitemColumnValues 将任一类型变体渲染为子项列值；唯一的落线函数。
func subitemColumnValues(in SubitemInput) map[string]interface{} {
	values := map[string]interface{}{
		SubColPartName:  in.PartName,
		SubColQuantity:  in.Quantity,
		SubColTotalCost: in.TotalCost,
		SubColNotes:     in.Notes,
	}

	switch fields := in.Fields.(type) {
	case DirectoryFields:
		values[SubColProductCode] = fields.ProductCode
		values[SubColSupplier] = fields.Supplier
		values[SubColSupplierLink] = linkValue(fields.SupplierLink, "Order Link")
		values[SubColJustification] = fields.Justification
	case CustomFields:
		values[SubColProductCode] = "N/A"
		values[SubColSupplier] = fields.Supplier
		values[SubColSupplierLink] = linkValue(fields.PartLink, "Part Link")
		values[SubColJustification] = fields.Justification
	case CSVFields:
		values[SubColProductCode] = constants.CSVOrderPartID
		values[SubColSupplier] = constants.CSVOrderSupplier
		values[SubColSupplierLink] = linkValue(fields.QuickOrderLink, "WCP Quick Order")
		values[SubColCSVFileLink] = linkValue(fields.CSVFileLink, "View CSV File")
		values[SubColJustification] = constants.CSVOrderJustification
	}

	return values
}

func linkValue(url, text string) map[string]string {
	return map[string]string{"url": url, "text": text}
}
