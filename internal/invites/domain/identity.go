package domain

import "time"

// Identity is a login-capable account (email + password hash). The wider
// platform owns richer account data; this service only creates patient
// identities during invite redemption.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string // argon2id encoded
	Role         string // "patient" for identities created here
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PatientProfile links a patient identity to its display data and to the
// psychologist whose invite created it.
type PatientProfile struct {
	ID             string
	IdentityID     string
	DisplayName    string
	Email          string
	Role           string
	PsychologistID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
