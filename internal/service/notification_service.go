package service

import (
	"context"
	"encoding/json"
	"fmt"

	"physiohub/internal/models"
	"physiohub/internal/repository"
)

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	fcm      *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, fcm: fcm}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.userRepo == nil {
		return
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u == nil || u.FCMToken == "" {
		return
	}
	_ = s.fcm.SendToUser(context.Background(), u.FCMToken, notifType, title, body, data)
}

func (s *NotificationService) NotifyAppointmentReminder(patientUserID uint, appointmentID uint, therapistName, when string) error {
	return s.Notify(patientUserID, models.NotifAppointmentReminder, "Upcoming appointment",
		"Your session with "+therapistName+" is scheduled for "+when,
		map[string]interface{}{"appointment_id": appointmentID})
}

func (s *NotificationService) NotifyAppointmentCancelled(userID uint, appointmentID uint) error {
	return s.Notify(userID, models.NotifAppointmentCancelled, "Appointment cancelled",
		"One of your appointments has been cancelled.",
		map[string]interface{}{"appointment_id": appointmentID})
}

func (s *NotificationService) NotifyExerciseAssigned(patientUserID uint, exerciseTitle string, planID uint) error {
	return s.Notify(patientUserID, models.NotifExerciseAssigned, "New exercise",
		"\""+exerciseTitle+"\" was added to your home program",
		map[string]interface{}{"plan_id": planID})
}

func (s *NotificationService) NotifyPaymentReceived(patientUserID uint, amount float64, reference string) error {
	return s.Notify(patientUserID, models.NotifPaymentReceived, "Payment received",
		fmt.Sprintf("We received your payment of %.2f.", amount),
		map[string]interface{}{"amount": amount, "reference": reference})
}

// NotifyProximityAlert tells an admin that two tracked people are closer
// than the configured threshold.
func (s *NotificationService) NotifyProximityAlert(adminUserID uint, category, nameA, nameB string, distanceMeters float64) error {
	return s.Notify(adminUserID, models.NotifProximityAlert, "Proximity alert",
		fmt.Sprintf("%s and %s are %.0f m apart", nameA, nameB, distanceMeters),
		map[string]interface{}{"category": category, "distance_meters": distanceMeters})
}
