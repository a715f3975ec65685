package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// ProductResponse — товар из API.
type ProductResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Status            string `json:"status"`
	CatalogVisibility string `json:"catalog_visibility"`
	Featured          bool   `json:"featured"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ScheduleResponse — запись расписания из API.
type ScheduleResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ScheduledAt string `json:"scheduled_at"`
	Kind        string `json:"kind"`
	CreatedAt   string `json:"created_at"`
}

// PendingScheduleResponse — строка списка ожидающих переходов.
type PendingScheduleResponse struct {
	ScheduleResponse

	ProductName   string `json:"product_name"`
	ProductStatus string `json:"product_status"`
	Timezone      string `json:"timezone"`
	LocalDate     string `json:"local_date"`
	LocalTime     string `json:"local_time"`
}

// TriggerRunResponse — результат запроса немедленного прогона.
type TriggerRunResponse struct {
	Triggered       bool   `json:"triggered"`
	Due             int    `json:"due"`
	NextScheduledAt string `json:"next_scheduled_at,omitempty"`
}

// SchedulerStatusResponse — состояние очереди планировщика.
type SchedulerStatusResponse struct {
	Due             int    `json:"due"`
	Pending         int    `json:"pending"`
	NextScheduledAt string `json:"next_scheduled_at,omitempty"`
}

// ReportItem — один товар в отчёте прогона.
type ReportItem struct {
	ScheduleID int64  `json:"schedule_id"`
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name,omitempty"`
}

// ReportResponse — отчёт прогона из API.
type ReportResponse struct {
	StartedAt  string       `json:"started_at"`
	FinishedAt string       `json:"finished_at"`
	Manual     bool         `json:"manual"`
	Summary    string       `json:"summary"`
	Succeeded  []ReportItem `json:"succeeded,omitempty"`
	Failed     []ReportItem `json:"failed,omitempty"`
}

// Zone — таймзона из каталога API.
type Zone struct {
	ID     string `json:"id"`
	Offset string `json:"offset"`
}

// --- Request types ---

// CreateProductRequest — создание товара.
type CreateProductRequest struct {
	Name              string `json:"name"`
	Status            string `json:"status,omitempty"`
	CatalogVisibility string `json:"catalog_visibility,omitempty"`
	Featured          bool   `json:"featured,omitempty"`
}

// SetScheduleRequest — планирование перехода товара.
type SetScheduleRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone,omitempty"`
	Kind     string `json:"kind"`
}

// UpdateSettingsRequest — изменение настроек.
type UpdateSettingsRequest struct {
	DefaultTimezone       *string `json:"default_timezone,omitempty"`
	DeleteDataOnUninstall *string `json:"delete_data_on_uninstall,omitempty"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Vitrina API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Products ---

// ListProducts возвращает товары.
func (c *Client) ListProducts(limit int) ([]ProductResponse, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var products []ProductResponse
	err := c.list("/api/v1/products", params, &products)
	return products, err
}

// CreateProduct создаёт товар.
func (c *Client) CreateProduct(req CreateProductRequest) (*ProductResponse, error) {
	var product ProductResponse
	err := c.post("/api/v1/products", req, &product)
	return &product, err
}

// GetProduct возвращает товар по ID.
func (c *Client) GetProduct(id int64) (*ProductResponse, error) {
	var product ProductResponse
	err := c.get("/api/v1/products/"+formatID(id), &product)
	return &product, err
}

// --- Schedules ---

// ListSchedules возвращает все ожидающие записи расписания.
func (c *Client) ListSchedules() ([]PendingScheduleResponse, error) {
	var schedules []PendingScheduleResponse
	err := c.list("/api/v1/schedules", nil, &schedules)
	return schedules, err
}

// SetSchedule планирует переход товара.
func (c *Client) SetSchedule(productID int64, req SetScheduleRequest) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.put("/api/v1/products/"+formatID(productID)+"/schedule", req, &schedule)
	return &schedule, err
}

// CancelSchedule снимает ожидающую запись товара.
func (c *Client) CancelSchedule(productID int64) error {
	return c.delete("/api/v1/products/" + formatID(productID) + "/schedule")
}

// DeleteSchedule удаляет запись расписания по её ID.
func (c *Client) DeleteSchedule(id int64) error {
	return c.delete("/api/v1/schedules/" + formatID(id))
}

// --- Scheduler ---

// TriggerRun запрашивает немедленный прогон.
func (c *Client) TriggerRun() (*TriggerRunResponse, error) {
	var result TriggerRunResponse
	err := c.post("/api/v1/scheduler/run", nil, &result)
	return &result, err
}

// SchedulerStatus возвращает состояние очереди планировщика.
func (c *Client) SchedulerStatus() (*SchedulerStatusResponse, error) {
	var status SchedulerStatusResponse
	err := c.get("/api/v1/scheduler/status", &status)
	return &status, err
}

// LatestReport возвращает отчёт последнего прогона.
func (c *Client) LatestReport() (*ReportResponse, error) {
	var report ReportResponse
	err := c.get("/api/v1/reports/latest", &report)
	return &report, err
}

// --- Timezones ---

// ListTimezones возвращает каталог таймзон.
func (c *Client) ListTimezones() ([]Zone, error) {
	var zones []Zone
	err := c.list("/api/v1/timezones", nil, &zones)
	return zones, err
}

// --- Settings ---

// GetSettings возвращает все настройки.
func (c *Client) GetSettings() (map[string]string, error) {
	settings := make(map[string]string)
	err := c.get("/api/v1/settings", &settings)
	return settings, err
}

// UpdateSettings изменяет настройки.
func (c *Client) UpdateSettings(req UpdateSettingsRequest) (map[string]string, error) {
	settings := make(map[string]string)
	err := c.put("/api/v1/settings", req, &settings)
	return settings, err
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
