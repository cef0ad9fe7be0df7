package domain

const (
	RoleAdmin     = "ADMIN"
	RoleDoctor    = "DOCTOR"
	RoleTherapist = "THERAPIST"
	RolePatient   = "PATIENT"
)

// StaffRoles can manage patients, plans and appointments.
var StaffRoles = []string{RoleAdmin, RoleDoctor, RoleTherapist}

const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentNoShow    = "NO_SHOW"
)

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

const (
	PaymentMethodCash      = "CASH"
	PaymentMethodCard      = "CARD"
	PaymentMethodTransfer  = "TRANSFER"
	PaymentMethodInsurance = "INSURANCE"
)

const (
	PresenceOnDuty    = "ON_DUTY"
	PresenceOffDuty   = "OFF_DUTY"
	PresenceInSession = "IN_SESSION"
)

// DateLayout is the calendar-day key used by session records and the
// earnings rollups.
const DateLayout = "2006-01-02"

// DefaultProximityThresholdMeters flags people closer than this on the live
// map unless the request overrides it.
const DefaultProximityThresholdMeters = 100.0
