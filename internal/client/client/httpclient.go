package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/common"
	"github.com/dmitrijs2005/expenses/internal/logging"
	"github.com/google/uuid"
)

// operation names an endpoint and the message shown when the server gives
// no better one.
type operation struct {
	name     string
	fallback string
}

var (
	opListExpenses     = operation{"list_expenses", "Failed to fetch expenses"}
	opAddExpense       = operation{"add_expense", "Failed to add expense"}
	opGetExpense       = operation{"get_expense", "Failed to fetch expense"}
	opDeleteExpense    = operation{"delete_expense", "Failed to delete expense"}
	opAttachment       = operation{"attachment", "Failed to download attachment"}
	opSummaryTotal     = operation{"summary_total", "Failed to fetch summary"}
	opSummaryByMonth   = operation{"summary_month", "Failed to fetch monthly summary"}
	opCreateShare      = operation{"create_share", "Failed to create share link"}
	opGetShared        = operation{"get_shared", "Failed to fetch shared expense"}
	opCloneShared      = operation{"clone_shared", "Failed to import shared expense"}
	opSharedAttachment = operation{"shared_attachment", "Failed to download shared attachment"}
	opListRecurring    = operation{"list_recurring", "Failed to fetch recurring expenses"}
	opAddRecurring     = operation{"add_recurring", "Failed to add recurring expense"}
	opDeleteRecurring  = operation{"delete_recurring", "Failed to delete recurring expense"}
)

// maxErrorBody caps how much of an error response is read into a message.
const maxErrorBody = 4 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) url(path string) string {
	return c.baseURL + path
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	return req, nil
}

// do sends req and returns the response only for 2xx statuses. Anything else
// is closed and converted into *APIError.
func (c *HTTPClient) do(op operation, req *http.Request) (*http.Response, error) {
	start := time.Now()
	reqID := req.Header.Get(common.RequestIDHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(req.Context(), "request failed",
			"op", op.name, "method", req.Method, "path", req.URL.Path, "request_id", reqID, "error", err)
		return nil, &APIError{Op: op.name, Message: op.fallback, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	c.logger.Debug(req.Context(), "request done",
		"op", op.name, "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(b))
	if msg == "" {
		msg = op.fallback
	}
	return nil, &APIError{Op: op.name, StatusCode: resp.StatusCode, Message: msg}
}

func (c *HTTPClient) send(ctx context.Context, op operation, method, path, token string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return nil, &APIError{Op: op.name, Message: op.fallback, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.do(op, req)
}

func (c *HTTPClient) getJSON(ctx context.Context, op operation, path, token string, v any) error {
	resp, err := c.send(ctx, op, http.MethodGet, path, token, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(op, resp.Body, v)
}

func (c *HTTPClient) text(ctx context.Context, op operation, method, path, token string) (string, error) {
	resp, err := c.send(ctx, op, method, path, token, nil, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Op: op.name, StatusCode: resp.StatusCode, Message: op.fallback, Err: err}
	}
	return string(b), nil
}

// message reads a JSON body meant for display. A JSON string is unquoted;
// any other JSON value is returned compacted.
func (c *HTTPClient) message(op operation, resp *http.Response) (string, error) {
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := decodeJSON(op, resp.Body, &raw); err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), nil
	}
	return buf.String(), nil
}

func decodeJSON(op operation, r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &APIError{Op: op.name, Message: op.fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// keyedList converts the backend's {"<id>": {...}} objects into a slice
// ordered by numeric id, with the key copied into each entry via setID.
func keyedList[T any](op operation, data map[string]T, setID func(*T, int64)) ([]T, error) {
	type pair struct {
		id   int64
		item T
	}
	pairs := make([]pair, 0, len(data))
	for key, item := range data {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, &APIError{Op: op.name, Message: op.fallback, Err: fmt.Errorf("non-numeric id %q", key)}
		}
		setID(&item, id)
		pairs = append(pairs, pair{id: id, item: item})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })

	result := make([]T, 0, len(pairs))
	for _, p := range pairs {
		result = append(result, p.item)
	}
	return result, nil
}

func (c *HTTPClient) ListExpenses(ctx context.Context, token string) ([]models.Expense, error) {
	var data map[string]models.Expense
	if err := c.getJSON(ctx, opListExpenses, "/list/", token, &data); err != nil {
		return nil, err
	}
	return keyedList(opListExpenses, data, func(e *models.Expense, id int64) {
		e.ID = id
		e.Normalize()
	})
}

func (c *HTTPClient) AddExpense(ctx context.Context, e models.NewExpense, token string) (string, error) {
	fields := []formField{
		{"date", e.Date},
		{"amount", e.Amount.String()},
	}
	if e.Description != "" {
		fields = append(fields, formField{"description", e.Description})
	}
	fields = append(fields, formField{"is_recurring", strconv.FormatBool(e.IsRecurring)})
	if e.IsRecurring && e.Frequency != "" {
		fields = append(fields, formField{"frequency", string(e.Frequency)})
	}

	body, contentType, err := multipartBody(fields, "attachment", e.AttachmentPath)
	if err != nil {
		return "", &APIError{Op: opAddExpense.name, Message: opAddExpense.fallback, Err: err}
	}

	resp, err := c.send(ctx, opAddExpense, http.MethodPost, "/add", token, body, contentType)
	if err != nil {
		return "", err
	}
	return c.message(opAddExpense, resp)
}

func (c *HTTPClient) GetExpense(ctx context.Context, id int64, token string) (*models.Expense, error) {
	var e *models.Expense
	if err := c.getJSON(ctx, opGetExpense, "/"+strconv.FormatInt(id, 10), token, &e); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &APIError{Op: opGetExpense.name, StatusCode: http.StatusNotFound, Message: opGetExpense.fallback}
	}
	if e.ID == 0 {
		e.ID = id
	}
	e.Normalize()
	return e, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id int64, token string) (string, error) {
	return c.text(ctx, opDeleteExpense, http.MethodDelete, "/delete/"+strconv.FormatInt(id, 10), token)
}

func (c *HTTPClient) AttachmentURL(id int64) string {
	return c.url("/attachment/" + strconv.FormatInt(id, 10))
}

func (c *HTTPClient) DownloadAttachment(ctx context.Context, id int64, token string, w io.Writer) (int64, error) {
	return c.download(ctx, opAttachment, "/attachment/"+strconv.FormatInt(id, 10), token, w)
}

func (c *HTTPClient) download(ctx context.Context, op operation, path, token string, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, op, http.MethodGet, path, token, nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &APIError{Op: op.name, StatusCode: resp.StatusCode, Message: op.fallback, Err: err}
	}
	return n, nil
}

func (c *HTTPClient) SummaryTotal(ctx context.Context, token string) (string, error) {
	return c.text(ctx, opSummaryTotal, http.MethodGet, "/summary/", token)
}

func (c *HTTPClient) SummaryByMonth(ctx context.Context, month int, token string) (string, error) {
	return c.text(ctx, opSummaryByMonth, http.MethodGet, "/summary/"+strconv.Itoa(month), token)
}

func (c *HTTPClient) CreateShare(ctx context.Context, id int64, token string) (models.ShareLink, error) {
	resp, err := c.send(ctx, opCreateShare, http.MethodPost, "/share/"+strconv.FormatInt(id, 10), token, nil, "")
	if err != nil {
		return models.ShareLink{}, err
	}
	defer resp.Body.Close()

	var link models.ShareLink
	if err := decodeJSON(opCreateShare, resp.Body, &link); err != nil {
		return models.ShareLink{}, err
	}
	if link.Token == "" {
		return models.ShareLink{}, &APIError{Op: opCreateShare.name, StatusCode: resp.StatusCode, Message: opCreateShare.fallback}
	}
	return link, nil
}

func sharedPath(shareToken string) string {
	return "/shared/" + url.PathEscape(shareToken)
}

func (c *HTTPClient) GetShared(ctx context.Context, shareToken string) (*models.Expense, error) {
	var e *models.Expense
	if err := c.getJSON(ctx, opGetShared, sharedPath(shareToken), "", &e); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &APIError{Op: opGetShared.name, StatusCode: http.StatusNotFound, Message: opGetShared.fallback}
	}
	e.Normalize()
	return e, nil
}

func (c *HTTPClient) CloneShared(ctx context.Context, shareToken string, token string) (string, error) {
	resp, err := c.send(ctx, opCloneShared, http.MethodPost, sharedPath(shareToken)+"/clone", token, nil, "")
	if err != nil {
		return "", err
	}
	return c.message(opCloneShared, resp)
}

func (c *HTTPClient) SharedAttachmentURL(shareToken string) string {
	return c.url(sharedPath(shareToken) + "/attachment")
}

func (c *HTTPClient) DownloadSharedAttachment(ctx context.Context, shareToken string, w io.Writer) (int64, error) {
	return c.download(ctx, opSharedAttachment, sharedPath(shareToken)+"/attachment", "", w)
}

func (c *HTTPClient) ListRecurring(ctx context.Context, token string) ([]models.RecurringRule, error) {
	var data map[string]models.RecurringRule
	if err := c.getJSON(ctx, opListRecurring, "/recurring/list", token, &data); err != nil {
		return nil, err
	}
	return keyedList(opListRecurring, data, func(r *models.RecurringRule, id int64) { r.ID = id })
}

func (c *HTTPClient) AddRecurring(ctx context.Context, r models.NewRecurringRule, token string) (string, error) {
	fields := []formField{
		{"start_date", r.StartDate},
		{"amount", r.Amount.String()},
	}
	if r.Description != "" {
		fields = append(fields, formField{"description", r.Description})
	}
	fields = append(fields, formField{"frequency", string(r.Frequency)})

	body, contentType, err := multipartBody(fields, "", "")
	if err != nil {
		return "", &APIError{Op: opAddRecurring.name, Message: opAddRecurring.fallback, Err: err}
	}

	resp, err := c.send(ctx, opAddRecurring, http.MethodPost, "/recurring/add", token, body, contentType)
	if err != nil {
		return "", err
	}
	return c.message(opAddRecurring, resp)
}

func (c *HTTPClient) DeleteRecurring(ctx context.Context, id int64, token string) (string, error) {
	return c.text(ctx, opDeleteRecurring, http.MethodDelete, "/recurring/delete/"+strconv.FormatInt(id, 10), token)
}

type formField struct {
	name  string
	value string
}

// multipartBody encodes fields and, when filePath is set, the file under
// fileField.
func multipartBody(fields []formField, fileField, filePath string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, "", fmt.Errorf("open attachment: %w", err)
		}
		defer f.Close()

		part, err := mw.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("read attachment: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
