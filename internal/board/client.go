package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/denhamvenom/inventoryapp/internal/constants"
	"github.com/denhamvenom/inventoryapp/internal/logger"
)

var (
	ErrConfigInvalid   = errors.New("board config invalid")
	ErrResponseInvalid = errors.New("board response invalid")
	ErrCallFailed      = errors.New("board call failed")

	errRateLimited = errors.New("board rate limited")
)

// 默认值与 Monday API 约定一致
const (
	defaultAPIURL       = "https://api.monday.com/v2"
	defaultAPIVersion   = "2024-10"
	defaultMaxRetries   = 3
	defaultRetryDelay   = time.Second
	defaultBatchSize    = 10
	defaultBatchDelay   = 500 * time.Millisecond
	defaultSubitemDelay = 200 * time.Millisecond
	defaultHTTPTimeout  = 15 * time.Second
)

// Config 看板客户端配置
type Config struct {
	APIURL       string
	APIVersion   string
	Token        string
	BoardID      string
	MaxRetries   int
	RetryDelay   time.Duration
	BatchSize    int
	BatchDelay   time.Duration
	SubitemDelay time.Duration
	HTTPTimeout  time.Duration
}

func (c *Config) normalize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.APIVersion = strings.TrimSpace(c.APIVersion)
	c.Token = strings.TrimSpace(c.Token)
	c.BoardID = strings.TrimSpace(c.BoardID)
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.BatchDelay <= 0 {
		c.BatchDelay = defaultBatchDelay
	}
	if c.SubitemDelay <= 0 {
		c.SubitemDelay = defaultSubitemDelay
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(c.BoardID) == "" {
		return fmt.Errorf("%w: board_id is required", ErrConfigInvalid)
	}
	return nil
}

// Client 看板 GraphQL 客户端，负责重试、退避与限流处理
type Client struct {
	cfg        Config
	httpClient *http.Client

	// sleep 可注入，测试中替换以避免真实等待
	sleep func(time.Duration)
}

// NewClient 创建看板客户端
func NewClient(cfg Config) (*Client, error) {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		sleep:      time.Sleep,
	}, nil
}

// BatchSize 状态查询批大小
func (c *Client) BatchSize() int {
	return c.cfg.BatchSize
}

// SubitemDelay 子项创建之间的固定间隔
func (c *Client) SubitemDelay() time.Duration {
	return c.cfg.SubitemDelay
}

// MainItemInput 主项创建输入（订单级元数据）
type MainItemInput struct {
	OrderNumber string
	OrderType   string
	Priority    string
	Department  string
	StudentName string
	Date        time.Time
}

// SubitemInput 子项创建输入（单个订单行）
type SubitemInput struct {
	ParentID  string
	PartID    string
	PartName  string
	Quantity  int
	TotalCost float64
	Notes     string
	Fields    SubitemFields
}

const createItemMutation = `
mutation ($boardId: ID!, $itemName: String!, $columnValues: JSON!) {
  create_item (board_id: $boardId, item_name: $itemName, column_values: $columnValues) {
    id
    name
  }
}`

const createSubitemMutation = `
mutation ($parentItemId: ID!, $itemName: String!, $columnValues: JSON!) {
  create_subitem (parent_item_id: $parentItemId, item_name: $itemName, column_values: $columnValues) {
    id
    name
  }
}`

const itemStatusQuery = `
query ($itemIds: [ID!]!) {
  items (ids: $itemIds) {
    id
    column_values {
      id
      text
    }
  }
}`

// CreateMainItem 为一个订单创建看板主项，返回主项 ID
func (c *Client) CreateMainItem(ctx context.Context, input MainItemInput) (string, error) {
	columnValues := map[string]interface{}{
		MainColStatus:      map[string]string{"label": constants.BoardStatusNeedToOrder},
		MainColPriority:    input.Priority,
		MainColOrderType:   input.OrderType,
		MainColDepartment:  input.Department,
		MainColStudentName: input.StudentName,
		MainColDate:        map[string]string{"date": input.Date.Format("2006-01-02")},
	}
	encoded, err := json.Marshal(columnValues)
	if err != nil {
		return "", fmt.Errorf("%w: marshal column values: %v", ErrResponseInvalid, err)
	}

	variables := map[string]interface{}{
		"boardId":      c.cfg.BoardID,
		"itemName":     input.OrderNumber,
		"columnValues": string(encoded),
	}

	data, err := c.call(ctx, "create_item", createItemMutation, variables)
	if err != nil {
		return "", err
	}

	var resp struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.CreateItem.ID == "" {
		return "", fmt.Errorf("%w: create_item returned no id", ErrResponseInvalid)
	}
	return resp.CreateItem.ID, nil
}

// CreateSubitem 在主项下创建一个子项，返回子项 ID
func (c *Client) CreateSubitem(ctx context.Context, input SubitemInput) (string, error) {
	encoded, err := json.Marshal(subitemColumnValues(input))
	if err != nil {
		return "", fmt.Errorf("%w: marshal column values: %v", ErrResponseInvalid, err)
	}

	itemName := input.PartID
	if itemName == "" {
		itemName = "Unknown"
	}
	variables := map[string]interface{}{
		"parentItemId": input.ParentID,
		"itemName":     itemName,
		"columnValues": string(encoded),
	}

	data, err := c.call(ctx, "create_subitem", createSubitemMutation, variables)
	if err != nil {
		return "", err
	}

	var resp struct {
		CreateSubitem struct {
			ID string `json:"id"`
		} `json:"create_subitem"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.CreateSubitem.ID == "" {
		return "", fmt.Errorf("%w: create_subitem returned no id for %s", ErrResponseInvalid, input.PartID)
	}
	return resp.CreateSubitem.ID, nil
}

// FetchStatuses 批量查询远端状态，返回 远端 ID -> 远端状态文本 映射。
// 状态列为空视为 Need to Order。
// ID 按固定批大小分批查询，批与批之间插入固定间隔以避免触发限流。
func (c *Client) FetchStatuses(ctx context.Context, remoteIDs []string) (map[string]string, error) {
	statuses := make(map[string]string, len(remoteIDs))

	for start := 0; start < len(remoteIDs); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(remoteIDs) {
			end = len(remoteIDs)
		}
		batch := remoteIDs[start:end]

		variables := map[string]interface{}{"itemIds": batch}
		data, err := c.call(ctx, "items", itemStatusQuery, variables)
		if err != nil {
			return nil, err
		}

		var resp struct {
			Items []struct {
				ID           string `json:"id"`
				ColumnValues []struct {
					ID   string `json:"id"`
					Text string `json:"text"`
				} `json:"column_values"`
			} `json:"items"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}

		for _, item := range resp.Items {
			for _, col := range item.ColumnValues {
				if col.ID != MainColStatus {
					continue
				}
				text := col.Text
				if text == "" {
					text = constants.BoardStatusNeedToOrder
				}
				statuses[item.ID] = text
				break
			}
		}

		if end < len(remoteIDs) {
			c.sleep(c.cfg.BatchDelay)
		}
	}

	return statuses, nil
}

// call 执行一次 GraphQL 调用，内部带有界重试。
// 普通失败按 base*2^(attempt-1) 退避，429 限流按 base*2^attempt 加长退避；
// 耗尽重试后返回带操作名与最后一次失败原因的终结错误。
func (c *Client) call(ctx context.Context, op, query string, variables map[string]interface{}) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		data, err := c.post(ctx, query, variables)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt == c.cfg.MaxRetries {
			break
		}
		delay := backoffDelay(c.cfg.RetryDelay, attempt, errors.Is(err, errRateLimited))
		logger.Warnw("board_call_retry",
			"operation", op,
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
			"rate_limited", errors.Is(err, errRateLimited),
			"error", err,
		)
		c.sleep(delay)
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrCallFailed, op, c.cfg.MaxRetries, lastErr)
}

func backoffDelay(base time.Duration, attempt int, rateLimited bool) time.Duration {
	exponent := attempt - 1
	if rateLimited {
		exponent = attempt
	}
	return base * time.Duration(1<<exponent)
}

func (c *Client) post(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.cfg.Token)
	req.Header.Set("API-Version", c.cfg.APIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	// GraphQL 错误包在 200 响应里，同样按失败处理
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("graphql error: %s", strings.Join(messages, "; "))
	}
	return envelope.Data, nil
}
