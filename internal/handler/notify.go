package handler

import (
	"fmt"

	"github.com/FrisSoftwareteam/AttendanceApp-V1/config"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/model"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/utils"
)

// notifyFlagged mails the admin when a record gets flagged. Best effort,
// skipped entirely when ADMIN_EMAIL is unset.
func notifyFlagged(record *model.AttendanceRecord, comment string) {
	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	if adminEmail == "" {
		return
	}

	subject := fmt.Sprintf("Check-in flagged: %s (%s)", record.UserName, record.Day)
	body := fmt.Sprintf(
		"<p><b>%s</b> flagged their check-in of %s.</p><p>Status: %s</p><p>Comment: %s</p>",
		record.UserName, record.Day, record.Status, comment,
	)

	go utils.SendEmail(adminEmail, subject, body)
}
