package model

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleViewer Role = "viewer"
)

func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleViewer:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusOnline      Status = "online"
	StatusOffline     Status = "offline"
	StatusMaintenance Status = "maintenance"
)

func ValidStatus(status Status) bool {
	switch status {
	case StatusOnline, StatusOffline, StatusMaintenance:
		return true
	default:
		return false
	}
}

type User struct {
	ID           string `bson:"_id" json:"id"`
	Username     string `bson:"username" json:"username"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Role         Role   `bson:"role" json:"role"`
	CreatedAt    Time   `bson:"createdAt" json:"createdAt"`
	LastLogin    *Time  `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}

type Session struct {
	ID        string `bson:"_id" json:"id"`
	UserID    string `bson:"userId" json:"userId"`
	Token     string `bson:"token" json:"token"`
	ExpiresAt Time   `bson:"expiresAt" json:"expiresAt"`
	CreatedAt Time   `bson:"createdAt" json:"createdAt"`
}

type Contact struct {
	Headmaster string `bson:"headmaster" json:"headmaster"`
	Email      string `bson:"email" json:"email"`
	Phone      string `bson:"phone" json:"phone"`
}

// Looma holds device metadata for the unit installed at a school.
type Looma struct {
	ID           string `bson:"id" json:"id"`
	SerialNumber string `bson:"serialNumber" json:"serialNumber"`
	Version      string `bson:"version" json:"version"`
	LastUpdate   Time   `bson:"lastUpdate" json:"lastUpdate"`
}

type School struct {
	ID         string  `bson:"_id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Latitude   float64 `bson:"latitude" json:"latitude"`
	Longitude  float64 `bson:"longitude" json:"longitude"`
	Contact    Contact `bson:"contact" json:"contact"`
	Province   string  `bson:"province" json:"province"`
	District   string  `bson:"district" json:"district"`
	Palika     string  `bson:"palika" json:"palika"`
	Status     Status  `bson:"status" json:"status"`
	LastSeen   Time    `bson:"lastSeen" json:"lastSeen"`
	LoomaID    string  `bson:"loomaId" json:"loomaId"`
	LoomaCount int     `bson:"loomaCount" json:"loomaCount"`
	Looma      Looma   `bson:"looma" json:"looma"`
	CreatedAt  Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt  Time    `bson:"updatedAt" json:"updatedAt"`
}

type QRScan struct {
	ID        string `bson:"_id" json:"id"`
	SchoolID  string `bson:"schoolId" json:"schoolId"`
	LoomaID   string `bson:"loomaId" json:"loomaId"`
	Timestamp Time   `bson:"timestamp" json:"timestamp"`
	StaffName string `bson:"staffName" json:"staffName"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
}

type AccessLog struct {
	ID        string `bson:"_id" json:"id"`
	SchoolID  string `bson:"schoolId" json:"schoolId"`
	UserID    string `bson:"userId" json:"userId"`
	Timestamp Time   `bson:"timestamp" json:"timestamp"`
	User      string `bson:"user" json:"user"`
	Action    string `bson:"action" json:"action"`
	Details   string `bson:"details,omitempty" json:"details,omitempty"`
}
