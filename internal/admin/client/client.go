// Package client содержит типизированный клиент админ-API сервиса.
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
	"strconv"
	"time"
)

// Client клиент админ-API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// ListPodcasts получает страницу подкастов
func (c *Client) ListPodcasts(ctx context.Context, page, limit int, search string) (*PodcastPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}

	var result PodcastPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/podcasts?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SavePodcast создает (id == 0) или обновляет подкаст multipart формой.
// image отправляется только если передан; при обновлении без image
// существующее изображение сохраняется на сервере.
func (c *Client) SavePodcast(ctx context.Context, id int64, form *SavePodcastForm, image io.Reader, imageName string) (*Podcast, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"podcasterName":  form.PodcasterName,
		"aboutPodcaster": form.AboutPodcaster,
		"venue":          form.Venue,
		"startDate":      form.StartDate,
		"endDate":        form.EndDate,
		"isActive":       strconv.FormatBool(form.IsActive),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("%w: write field %q: %v", ErrUnavailable, name, err)
		}
	}

	if image != nil {
		part, err := writer.CreateFormFile("image", imageName)
		if err != nil {
			return nil, fmt.Errorf("%w: create form file: %v", ErrUnavailable, err)
		}
		if _, err := io.Copy(part, image); err != nil {
			return nil, fmt.Errorf("%w: copy image: %v", ErrUnavailable, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: close multipart writer: %v", ErrUnavailable, err)
	}

	method := http.MethodPost
	path := "/api/v1/podcasts"
	if id > 0 {
		method = http.MethodPut
		path = fmt.Sprintf("/api/v1/podcasts/%d", id)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result Podcast
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TogglePodcastActive переключает активность подкаста частичной формой
func (c *Client) TogglePodcastActive(ctx context.Context, id int64, isActive bool) (*Podcast, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("isActive", strconv.FormatBool(isActive)); err != nil {
		return nil, fmt.Errorf("%w: write field: %v", ErrUnavailable, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: close multipart writer: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/v1/podcasts/%d", c.baseURL, id), &body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result Podcast
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePodcast удаляет подкаст
func (c *Client) DeletePodcast(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/podcasts/%d", id), nil, nil)
}

// GenerateSlots отправляет пакет дат на генерацию слотов
func (c *Client) GenerateSlots(ctx context.Context, podcastID int64, req *GenerateSlotsRequest) (*GenerateSlotsResult, error) {
	var result GenerateSlotsResult
	path := fmt.Sprintf("/api/v1/podcasts/%d/slots/generate", podcastID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSlots получает страницу слотов по фильтру
func (c *Client) ListSlots(ctx context.Context, q SlotListQuery) (*SlotPage, error) {
	query := url.Values{}
	if q.PodcastID > 0 {
		query.Set("podcastId", strconv.FormatInt(q.PodcastID, 10))
	}
	if q.Date != "" {
		query.Set("date", q.Date)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))

	var result SlotPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/slots?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSlot удаляет один слот
func (c *Client) DeleteSlot(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/slots/%d", id), nil, nil)
}

// BulkDeleteSlots удаляет набор слотов одним запросом
func (c *Client) BulkDeleteSlots(ctx context.Context, slotIDs []int64) (int64, error) {
	body := struct {
		SlotIDs []int64 `json:"slotIds"`
	}{SlotIDs: slotIDs}

	var result BulkDeleteResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/slots/bulk-delete", body, &result); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}

// ListBookings получает страницу бронирований подкаста
func (c *Client) ListBookings(ctx context.Context, podcastID int64, page, limit int, search string) (*BookingPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}

	var result BookingPage
	path := fmt.Sprintf("/api/v1/podcasts/%d/bookings?%s", podcastID, query.Encode())
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateBookingStatus применяет действие администратора к бронированию
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID int64, req *UpdateBookingStatusRequest) (*Booking, error) {
	var result Booking
	path := fmt.Sprintf("/api/v1/bookings/%d/status", bookingID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if dest == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrRemote, err)
		}
		return nil
	}

	var remote errorBody
	_ = json.NewDecoder(resp.Body).Decode(&remote)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = ErrInvalidRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		sentinel = ErrRemote
	}

	c.log.Warn("Admin API call failed: %s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, remote.Message)
	return fmt.Errorf("%w: %s %s: status %d: %s", sentinel, req.Method, req.URL.Path, resp.StatusCode, remote.Message)
}
