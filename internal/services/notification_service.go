// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cappeLindo/webcars-api/internal/apperrors"
	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

// NotificationService records in-app notifications when a new listing
// matches a client's alert filters and, when SMTP is configured, mails
// the client as well.
type NotificationService struct {
	db      *gorm.DB
	config  *config.Config
	timeout time.Duration
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:      db,
		config:  cfg,
		timeout: cfg.Database.OperationTimeout(),
	}
}

func (s *NotificationService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// NotifyAlertMatches writes one notification per matched filter. Each
// failure is logged and skipped so one bad row never blocks the rest.
func (s *NotificationService) NotifyAlertMatches(ctx context.Context, carID uint, matched []models.AlertFilter) {
	var car models.Car
	if err := s.db.WithContext(ctx).Preload("Brand").Preload("CarModel").
		First(&car, carID).Error; err != nil {
		logrus.WithError(err).WithField("car_id", carID).Warn("Failed to load car for alert notifications")
		return
	}

	for _, filter := range matched {
		filterID := filter.ID
		notification := models.Notification{
			ClientID:      filter.ClientID,
			Type:          models.NotificationTypeAlertMatch,
			Title:         fmt.Sprintf("New listing matches %q", filter.Name),
			Message:       fmt.Sprintf("%s %s (%d) for R$ %.2f matches your alert %q", car.Brand.Name, car.Name, car.Year, car.Price, filter.Name),
			CarID:         &car.ID,
			AlertFilterID: &filterID,
		}

		if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"car_id":    carID,
				"filter_id": filter.ID,
			}).Warn("Failed to create alert notification")
			continue
		}

		s.emailAlertMatch(ctx, &filter, &car)
	}
}

func (s *NotificationService) emailAlertMatch(ctx context.Context, filter *models.AlertFilter, car *models.Car) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, filter.ClientID).Error; err != nil {
		logrus.WithError(err).WithField("client_id", filter.ClientID).Warn("Failed to load client for alert email")
		return
	}

	data := map[string]interface{}{
		"ClientName": client.Name,
		"FilterName": filter.Name,
		"CarName":    car.Name,
		"BrandName":  car.Brand.Name,
		"Year":       car.Year,
		"Price":      fmt.Sprintf("%.2f", car.Price),
	}

	tmpl := s.getEmailTemplate("alert_match")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		logrus.WithError(err).Warn("Failed to render alert email template")
		return
	}

	subject := fmt.Sprintf("New match for your alert %q", filter.Name)
	if err := s.sendEmail(client.Email, subject, body); err != nil {
		logrus.WithError(err).WithField("client_id", client.ID).Warn("Failed to send alert email")
	}
}

func (s *NotificationService) ListNotifications(ctx context.Context, clientID uint, params utils.PaginationParams) ([]models.Notification, int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "notification")
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").
		Scopes(func(db *gorm.DB) *gorm.DB { return utils.ApplyPagination(db, params) }).
		Find(&notifications).Error; err != nil {
		return nil, 0, apperrors.FromDB(err, "notification")
	}

	return notifications, total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, clientID uint) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("client_id = ? AND read_at IS NULL", clientID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.FromDB(err, "notification")
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, clientID, notificationID uint) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND client_id = ?", notificationID, clientID).
		Update("read_at", &now)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "notification")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("notification")
	}
	return nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Debug("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s <%s>\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.config.Email.FromName, s.config.Email.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"alert_match": {
			Subject: "New listing matches your alert",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.ClientName}},</h2>
	<p>A new listing matches your alert "{{.FilterName}}":</p>
	<p><strong>{{.BrandName}} {{.CarName}} ({{.Year}})</strong> for R$ {{.Price}}</p>
	<p>Best regards,<br>WebCars</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
