package handler

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"physiohub/config"
	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"
	"physiohub/internal/service"
	"physiohub/internal/ws"
	"physiohub/pkg/proximity"

	"github.com/gin-gonic/gin"
)

// MapHandler drives the live clinic map: therapists push positions, staff
// pull the map state, and pairs closer than the threshold come back as
// proximity alerts.
type MapHandler struct {
	cfg           *config.Config
	locationRepo  *repository.LocationRepository
	presenceRepo  *repository.PresenceRepository
	userRepo      *repository.UserRepository
	therapistRepo *repository.TherapistRepository
	patientRepo   *repository.PatientRepository
	mapHub        *ws.MapHub
	notifSvc      *service.NotificationService

	// pair key -> last push, so polling the map doesn't spam admins
	notifyMu sync.Mutex
	notified map[string]time.Time
}

const alertNotifyCooldown = 15 * time.Minute

func NewMapHandler(
	cfg *config.Config,
	locationRepo *repository.LocationRepository,
	presenceRepo *repository.PresenceRepository,
	userRepo *repository.UserRepository,
	therapistRepo *repository.TherapistRepository,
	patientRepo *repository.PatientRepository,
	mapHub *ws.MapHub,
	notifSvc *service.NotificationService,
) *MapHandler {
	return &MapHandler{
		cfg:           cfg,
		locationRepo:  locationRepo,
		presenceRepo:  presenceRepo,
		userRepo:      userRepo,
		therapistRepo: therapistRepo,
		patientRepo:   patientRepo,
		mapHub:        mapHub,
		notifSvc:      notifSvc,
		notified:      make(map[string]time.Time),
	}
}

type UpdateLocationRequest struct {
	Latitude       float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude      float64 `json:"longitude" binding:"required,min=-180,max=180"`
	AccuracyMeters float64 `json:"accuracy_meters"`
}

// UpdateLocation stores the caller's position and, for therapists, pushes
// the marker to every connected map viewer.
func (h *MapHandler) UpdateLocation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc, _ := h.locationRepo.GetByUserID(userID)
	if loc == nil {
		loc = &models.UserLocation{UserID: userID}
	}
	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.AccuracyMeters = req.AccuracyMeters
	loc.LastUpdatedAt = time.Now()
	if err := h.locationRepo.Upsert(loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store location"})
		return
	}
	if middleware.GetRole(c) == domain.RoleTherapist {
		u, err := h.userRepo.GetByID(userID)
		if err == nil {
			onDuty := false
			if presence, _ := h.presenceRepo.GetByUserID(userID); presence != nil {
				onDuty = presence.IsOnDuty
			}
			h.mapHub.UpdateLocation(userID, u.DisplayName(), req.Latitude, req.Longitude, onDuty)
		}
	}
	c.JSON(http.StatusOK, gin.H{"location": loc})
}

type SetPresenceRequest struct {
	Status string `json:"status" binding:"required,oneof=ON_DUTY OFF_DUTY IN_SESSION"`
}

// SetPresence flips a therapist between duty states. Only ON_DUTY and
// IN_SESSION therapists appear as live markers.
func (h *MapHandler) SetPresence(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req SetPresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	presence, _ := h.presenceRepo.GetByUserID(userID)
	if presence == nil {
		presence = &models.UserPresence{UserID: userID}
	}
	presence.Status = req.Status
	presence.IsOnDuty = req.Status != domain.PresenceOffDuty
	presence.LastSeenAt = time.Now()
	if err := h.presenceRepo.Upsert(presence); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store presence"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"presence": presence})
}

// State returns the current map: therapist and patient lists, viewport
// bounds over the displayed people, and the proximity alerts.
//
// The optional therapist_id filter narrows what is DISPLAYED. Alerts are
// always computed over the full rosters so a filter never hides a warning.
func (h *MapHandler) State(c *gin.Context) {
	therapists, err := h.therapistRepo.ListWithLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load therapists"})
		return
	}
	patients, err := h.patientRepo.ListWithLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load patients"})
		return
	}

	allTherapists := therapistPersons(therapists)
	allPatients := patientPersons(patients)

	threshold := h.cfg.Clinic.ProximityThresholdMeters
	if v := c.Query("threshold_meters"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			threshold = f
		}
	}
	alerts := proximity.ComputeAlerts(allTherapists, allPatients, threshold)
	if len(alerts) > 0 {
		h.mapHub.BroadcastAlerts(alerts)
		h.pushAlertNotifications(alerts)
	}

	displayTherapists := allTherapists
	displayPatients := allPatients
	if v := c.Query("therapist_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			displayTherapists, displayPatients = filterByTherapist(uint(id), therapists, patients)
		}
	}
	bounds, hasBounds := proximity.ComputeBounds(displayTherapists, displayPatients)

	resp := gin.H{
		"therapists":       displayTherapists,
		"patients":         displayPatients,
		"alerts":           alerts,
		"threshold_meters": threshold,
		"markers":          h.mapHub.GetMarkers(),
	}
	if hasBounds {
		resp["bounds"] = bounds
	}
	c.JSON(http.StatusOK, resp)
}

type ScanRequest struct {
	Therapists      []map[string]any `json:"therapists"`
	Patients        []map[string]any `json:"patients"`
	ThresholdMeters float64          `json:"threshold_meters"`
}

// Scan runs the proximity check over caller-supplied raw rows, without
// touching the database. Rows from imports and legacy exports come in many
// shapes, so they pass through the normalizer first.
func (h *MapHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	threshold := req.ThresholdMeters
	if threshold <= 0 {
		threshold = h.cfg.Clinic.ProximityThresholdMeters
	}
	therapists := proximity.NormalizeAll(req.Therapists, domain.RoleTherapist)
	patients := proximity.NormalizeAll(req.Patients, domain.RolePatient)
	alerts := proximity.ComputeAlerts(therapists, patients, threshold)
	resp := gin.H{
		"therapists":       therapists,
		"patients":         patients,
		"alerts":           alerts,
		"threshold_meters": threshold,
	}
	if bounds, ok := proximity.ComputeBounds(therapists, patients); ok {
		resp["bounds"] = bounds
	}
	c.JSON(http.StatusOK, resp)
}

// pushAlertNotifications sends each fresh alert to every admin. A pair that
// already fired within the cooldown stays silent.
func (h *MapHandler) pushAlertNotifications(alerts []proximity.Alert) {
	now := time.Now()
	var fresh []proximity.Alert
	h.notifyMu.Lock()
	for _, a := range alerts {
		key := a.Category + "|" + a.PersonA.ID + "|" + a.PersonB.ID
		if last, ok := h.notified[key]; ok && now.Sub(last) < alertNotifyCooldown {
			continue
		}
		h.notified[key] = now
		fresh = append(fresh, a)
	}
	for key, t := range h.notified {
		if now.Sub(t) > alertNotifyCooldown {
			delete(h.notified, key)
		}
	}
	h.notifyMu.Unlock()
	if len(fresh) == 0 {
		return
	}
	admins, err := h.userRepo.ListByRole(domain.RoleAdmin)
	if err != nil {
		return
	}
	for _, a := range fresh {
		for i := range admins {
			_ = h.notifSvc.NotifyProximityAlert(admins[i].ID, a.Category, a.PersonA.Name, a.PersonB.Name, a.DistanceMeters)
		}
	}
}

// therapistPersons converts roster rows to map people. Therapists without a
// stored location keep a nil coordinate and stay out of the pairwise scan.
func therapistPersons(rows []models.TherapistProfile) []proximity.Person {
	people := make([]proximity.Person, 0, len(rows))
	for i := range rows {
		t := &rows[i]
		p := proximity.Person{
			ID:   strconv.FormatUint(uint64(t.ID), 10),
			Name: t.User.DisplayName(),
		}
		if loc := t.User.Location; loc != nil {
			p.Coord = &proximity.Coordinate{
				Latitude:       loc.Latitude,
				Longitude:      loc.Longitude,
				AccuracyMeters: loc.AccuracyMeters,
				RecordedAtUnix: loc.LastUpdatedAt.Unix(),
			}
		}
		people = append(people, p)
	}
	return people
}

func patientPersons(rows []models.PatientProfile) []proximity.Person {
	people := make([]proximity.Person, 0, len(rows))
	for i := range rows {
		pt := &rows[i]
		p := proximity.Person{
			ID:   strconv.FormatUint(uint64(pt.ID), 10),
			Name: pt.User.DisplayName(),
		}
		if loc := pt.User.Location; loc != nil {
			p.Coord = &proximity.Coordinate{
				Latitude:       loc.Latitude,
				Longitude:      loc.Longitude,
				AccuracyMeters: loc.AccuracyMeters,
				RecordedAtUnix: loc.LastUpdatedAt.Unix(),
			}
		}
		people = append(people, p)
	}
	return people
}

// filterByTherapist keeps one therapist and their assigned patients.
func filterByTherapist(therapistID uint, therapists []models.TherapistProfile, patients []models.PatientProfile) ([]proximity.Person, []proximity.Person) {
	var keptT []models.TherapistProfile
	for i := range therapists {
		if therapists[i].ID == therapistID {
			keptT = append(keptT, therapists[i])
		}
	}
	var keptP []models.PatientProfile
	for i := range patients {
		if patients[i].TherapistID != nil && *patients[i].TherapistID == therapistID {
			keptP = append(keptP, patients[i])
		}
	}
	return therapistPersons(keptT), patientPersons(keptP)
}
