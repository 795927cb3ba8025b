// Package client implements the HTTP side of the collaborator contracts the
// check-in pipeline consumes: record storage, photo upload, network
// geolocation and settings, all against the API served by cmd/api.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/checkin"
)

// Client talks to the attendance API. It implements checkin.RecordService,
// checkin.UploadService and checkin.GeoIPService.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// apiError is the {"error": "..."} body every endpoint uses for failures.
type apiError struct {
	Message string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil && c.session.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Any auth failure invalidates the session
		if c.session != nil {
			c.session.Clear()
		}
		return errors.New("session expired, please log in again")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Message != "" {
			return errors.New(ae.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// Login authenticates and persists the issued token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})

	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", bytes.NewReader(payload), "application/json", &res); err != nil {
		return err
	}
	return c.session.Save(res.Token)
}

// Logout clears the session state.
func (c *Client) Logout() {
	c.session.Clear()
}

// recordPayload mirrors the server's record JSON.
type recordPayload struct {
	ID            uint      `json:"ID"`
	UserID        uint      `json:"user_id"`
	UserName      string    `json:"user_name"`
	CapturedAt    time.Time `json:"captured_at"`
	Timezone      string    `json:"timezone"`
	LocationLabel string    `json:"location_label"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Accuracy      *float64  `json:"accuracy"`
	PhotoURL      string    `json:"photo_url"`
	PhotoPublicID string    `json:"photo_public_id"`
	Status        string    `json:"status"`
	FlagComment   string    `json:"flag_comment"`
}

func (p *recordPayload) toRecord() *checkin.Record {
	return &checkin.Record{
		ID:            p.ID,
		UserID:        p.UserID,
		UserName:      p.UserName,
		CapturedAt:    p.CapturedAt,
		Timezone:      p.Timezone,
		LocationLabel: p.LocationLabel,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Accuracy:      p.Accuracy,
		PhotoURL:      p.PhotoURL,
		PhotoPublicID: p.PhotoPublicID,
		Status:        checkin.Status(p.Status),
		FlagComment:   p.FlagComment,
	}
}

// Today implements checkin.RecordService. The device's zone travels along
// so the server gates on the worker's calendar day, not its own.
func (c *Client) Today(ctx context.Context) (*checkin.Record, error) {
	path := "/api/attendance/today"
	if zone := deviceZone(); zone != "" {
		path += "?timezone=" + url.QueryEscape(zone)
	}

	var res struct {
		Data *recordPayload `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, "", &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, nil
	}
	return res.Data.toRecord(), nil
}

// Create implements checkin.RecordService.
func (c *Client) Create(ctx context.Context, rec checkin.NewRecord) (*checkin.Record, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"latitude":        rec.Position.Latitude,
		"longitude":       rec.Position.Longitude,
		"accuracy":        rec.Position.Accuracy,
		"location_label":  rec.Position.Label,
		"source":          rec.Position.Source,
		"photo_url":       rec.PhotoURL,
		"photo_public_id": rec.PhotoPublicID,
		"captured_at":     rec.CapturedAt.Format(time.RFC3339),
		"timezone":        rec.Timezone,
	})

	var res struct {
		Data *recordPayload `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/attendance/checkin", bytes.NewReader(payload), "application/json", &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, errors.New("server returned no record")
	}
	return res.Data.toRecord(), nil
}

// Delete implements checkin.RecordService.
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/attendance/%d", id), nil, "", nil)
}

// Flag implements checkin.RecordService.
func (c *Client) Flag(ctx context.Context, id uint, comment string) error {
	payload, _ := json.Marshal(map[string]string{"comment": comment})
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/attendance/%d/flag", id), bytes.NewReader(payload), "application/json", nil)
}

// Upload implements checkin.UploadService, posting the still as multipart.
func (c *Client) Upload(ctx context.Context, image []byte) (checkin.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "checkin.jpg")
	if err != nil {
		return checkin.UploadResult{}, err
	}
	if _, err := part.Write(image); err != nil {
		return checkin.UploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return checkin.UploadResult{}, err
	}

	var res struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload/", &buf, mw.FormDataContentType(), &res); err != nil {
		return checkin.UploadResult{}, err
	}
	return checkin.UploadResult{URL: res.URL, PublicID: res.PublicID}, nil
}

// Lookup implements checkin.GeoIPService.
func (c *Client) Lookup(ctx context.Context) (checkin.GeoIPResult, error) {
	var res checkin.GeoIPResult
	if err := c.do(ctx, http.MethodGet, "/api/geolocation/", nil, "", &res); err != nil {
		return checkin.GeoIPResult{}, err
	}
	return res, nil
}

// deviceZone names the local IANA zone when the runtime knows it.
func deviceZone() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return ""
}

// GetCutoff fetches the configured cutoff time.
func (c *Client) GetCutoff(ctx context.Context) (string, error) {
	var res struct {
		CutoffTime string `json:"cutoff_time"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/settings/cutoff", nil, "", &res); err != nil {
		return "", err
	}
	return res.CutoffTime, nil
}

// PutCutoff updates the cutoff time (admin only).
func (c *Client) PutCutoff(ctx context.Context, cutoff string) error {
	payload, _ := json.Marshal(map[string]string{"cutoff_time": cutoff})
	return c.do(ctx, http.MethodPut, "/api/settings/cutoff", bytes.NewReader(payload), "application/json", nil)
}
