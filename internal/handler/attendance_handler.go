package handler

import (
	"fmt"
	"time"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/checkin"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	repo        repository.AttendanceRepository
	userRepo    *repository.UserRepository
	settingRepo repository.SettingRepository
}

func NewAttendanceHandler(repo repository.AttendanceRepository, userRepo *repository.UserRepository, settingRepo repository.SettingRepository) *AttendanceHandler {
	return &AttendanceHandler{repo: repo, userRepo: userRepo, settingRepo: settingRepo}
}

type CheckInRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Accuracy      *float64 `json:"accuracy"`
	LocationLabel string   `json:"location_label"`
	Source        string   `json:"source"`
	PhotoURL      string   `json:"photo_url"`
	PhotoPublicID string   `json:"photo_public_id"`
	CapturedAt    string   `json:"captured_at"` // RFC3339
	Timezone      string   `json:"timezone"`    // IANA zone id
}

// CheckIn creates the single daily record for the authenticated worker and
// returns the canonical copy, status included.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	// 1. Identity from the auth middleware
	userID := uint(c.Locals("user_id").(float64))
	userName, _ := c.Locals("name").(string)

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Capture instant: trust the client's observation when parseable
	capturedAt := time.Now().UTC()
	if req.CapturedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.CapturedAt); err == nil {
			capturedAt = t.UTC()
		}
	}

	// The calendar day is the record's wall-clock day; the gate below and
	// the stored key share this one basis, never the server's zone
	day := checkin.DayOf(capturedAt, req.Timezone)

	// 3. One check-in per day
	existing, err := h.repo.GetByUserAndDay(userID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check today's attendance"})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already checked in today"})
	}

	// 4. A check-in needs a photo reference and a resolved position.
	// Presence is explicit: (0,0) is a legitimate fix, absent fields are not.
	if req.PhotoURL == "" || req.PhotoPublicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A photo is required"})
	}
	if req.Latitude == nil || req.Longitude == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A resolved location is required"})
	}

	// 5. Classify against the current cutoff, in the record's own zone
	cutoff := h.cutoff()
	status := checkin.Classify(capturedAt, req.Timezone, cutoff)

	// Server-side label correction when the client sent none
	label := req.LocationLabel
	if label == "" {
		label = fmt.Sprintf("GPS %.5f, %.5f", *req.Latitude, *req.Longitude)
	}
	source := req.Source
	if source != string(checkin.SourceNetwork) {
		source = string(checkin.SourceGPS)
	}

	record := model.AttendanceRecord{
		UserID:        userID,
		UserName:      userName,
		CapturedAt:    capturedAt,
		Timezone:      req.Timezone,
		Day:           day,
		LocationLabel: label,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		Accuracy:      req.Accuracy,
		Source:        source,
		PhotoURL:      req.PhotoURL,
		PhotoPublicID: req.PhotoPublicID,
		Status:        string(status),
	}

	if err := h.repo.Create(&record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save the check-in"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Checked in",
		"data":    record,
	})
}

// GetToday returns today's record, or a null payload when the day is open.
// The caller's timezone decides whose "today" that is; without one the
// server's zone applies.
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	day := checkin.DayOf(time.Now().UTC(), c.Query("timezone"))
	record, err := h.repo.GetByUserAndDay(userID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load today's attendance"})
	}
	if record == nil {
		return c.JSON(fiber.Map{"message": "No check-in yet today", "data": nil})
	}
	return c.JSON(fiber.Map{"message": "Check-in found", "data": record})
}

// Delete removes a record and re-opens the daily gate for that day. Owners
// may delete their own record, admins anyone's.
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	role, _ := c.Locals("role").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record id"})
	}

	record, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	}
	if record.UserID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to delete this record"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete the record"})
	}
	return c.JSON(fiber.Map{"message": "Record deleted"})
}

type FlagRequest struct {
	Comment string `json:"comment"`
}

// Flag attaches or replaces the flag comment on a record.
func (h *AttendanceHandler) Flag(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	role, _ := c.Locals("role").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record id"})
	}

	var req FlagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	}
	if record.UserID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to flag this record"})
	}

	if err := h.repo.UpdateFlagComment(uint(id), req.Comment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update the flag comment"})
	}

	notifyFlagged(record, req.Comment)

	return c.JSON(fiber.Map{"message": "Flag comment saved"})
}

// GetDay lists every roster member for a date, deriving Missing for anyone
// without a record. Admin surface.
func (h *AttendanceHandler) GetDay(c *fiber.Ctx) error {
	day := c.Query("date")
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	users, err := h.userRepo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load the roster"})
	}

	records, err := h.repo.GetByDay(day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load attendance"})
	}

	// Roster join: present users keep their stored status, absent ones are missing
	roster := make([]checkin.RosterUser, 0, len(users))
	for _, u := range users {
		roster = append(roster, checkin.RosterUser{ID: u.ID, Name: u.Name})
	}
	recorded := make(map[uint]checkin.Status, len(records))
	recordMap := make(map[uint]model.AttendanceRecord, len(records))
	for _, r := range records {
		recorded[r.UserID] = checkin.Status(r.Status)
		recordMap[r.UserID] = r
	}

	rows := checkin.DeriveDayRows(roster, recorded)

	out := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		entry := fiber.Map{
			"user_id": row.UserID,
			"name":    row.Name,
			"status":  row.Status,
		}
		if rec, ok := recordMap[row.UserID]; ok {
			entry["record"] = rec
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{
		"message": "Attendance for " + day,
		"cutoff":  h.cutoff(),
		"data":    out,
	})
}

// GetMonth returns a user's records for a month. Workers see their own,
// admins may pass user_id.
func (h *AttendanceHandler) GetMonth(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	role, _ := c.Locals("role").(string)

	month := c.Query("month")
	year := c.Query("year")
	if month == "" || year == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month and year are required"})
	}
	if len(month) == 1 {
		month = "0" + month
	}

	target := userID
	if q := c.QueryInt("user_id"); q > 0 && role == "admin" {
		target = uint(q)
	}

	records, err := h.repo.GetByMonth(target, month, year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load attendance history"})
	}

	return c.JSON(fiber.Map{
		"message": "Attendance history",
		"data":    records,
	})
}

// GetStats aggregates a month into punctuality metrics. Days without a
// check-in never count against the rate.
func (h *AttendanceHandler) GetStats(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	role, _ := c.Locals("role").(string)

	month := c.Query("month")
	year := c.Query("year")
	if month == "" || year == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month and year are required"})
	}
	if len(month) == 1 {
		month = "0" + month
	}

	var records []model.AttendanceRecord
	var err error

	q := c.QueryInt("user_id")
	switch {
	case q > 0 && role == "admin":
		records, err = h.repo.GetByMonth(uint(q), month, year)
	case c.Query("all") == "true" && role == "admin":
		records, err = h.repo.GetAllByMonth(month, year)
	default:
		records, err = h.repo.GetByMonth(userID, month, year)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load attendance"})
	}

	statuses := make([]checkin.Status, 0, len(records))
	for _, r := range records {
		statuses = append(statuses, checkin.Status(r.Status))
	}
	stats := checkin.ComputeStats(statuses)

	return c.JSON(fiber.Map{
		"message": "Punctuality stats",
		"data":    stats,
	})
}

// cutoff reads the configured cutoff, defaulting when unset or invalid.
func (h *AttendanceHandler) cutoff() string {
	value, err := h.settingRepo.Get(model.SettingCutoffTime)
	if err != nil || !checkin.ValidCutoff(value) {
		return checkin.DefaultCutoff
	}
	return value
}
