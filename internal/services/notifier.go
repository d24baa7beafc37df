package services

import (
	"log"

	"github.com/reelay-dev/reelay/internal/models"
	"gorm.io/gorm"
)

// Notify appends an in-app notification for the user and pushes it to any
// connected notification streams. The row is written before this returns;
// stream delivery is best-effort.
func Notify(db *gorm.DB, userID uint, content string) (models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Content: content,
	}

	if err := db.Create(&notification).Error; err != nil {
		return models.Notification{}, err
	}

	BroadcastNotification(userID, notification)

	return notification, nil
}

// NotifyFirstView records the first-viewer event for the video owner, sending
// email when the mailer is up and degrading to the in-app notification alone
// when it is not. Exactly one of the two carries the event on the happy path;
// on email success the notification is still written sequentially so callers
// observe it before the request returns.
func NotifyFirstView(db *gorm.DB, owner models.User, videoTitle string) error {
	content := "Your video " + videoTitle + " just got its first viewer"

	result := DefaultMailer.Send(owner.Email, "You got a viewer", content, "")

	if result != MailSent {
		log.Printf("First-view email unavailable for user %d, writing in-app notification", owner.ID)
	}

	_, err := Notify(db, owner.ID, content)
	return err
}
