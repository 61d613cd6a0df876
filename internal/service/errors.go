package service

import "errors"

var (
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrStudentUnknown 提交人不在队员名册中
	ErrStudentUnknown = errors.New("提交人不在队员名册中")
	// ErrPartNotFound 零件不存在
	ErrPartNotFound = errors.New("零件不存在")
	// ErrPartNameExists 零件名称已存在
	ErrPartNameExists = errors.New("零件名称已存在")
	// ErrPartInvalid 零件数据不合法
	ErrPartInvalid = errors.New("零件数据不合法")
	// ErrOrderEmpty 订单没有任何条目
	ErrOrderEmpty = errors.New("订单没有任何条目")
	// ErrQuantityInvalid 订购数量必须为正数
	ErrQuantityInvalid = errors.New("订购数量必须为正数")
	// ErrUploadInvalid 上传文件不合法
	ErrUploadInvalid = errors.New("上传文件不合法")
	// ErrSyncDisabled 看板同步未启用
	ErrSyncDisabled = errors.New("看板同步未启用")
)
