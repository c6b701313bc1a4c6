package models

type Role int

// UserRole constants
const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// CEFRLevel is a Common European Framework of Reference proficiency tier
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// cefrOrder maps levels to their position for difficulty comparisons
var cefrOrder = map[CEFRLevel]int{
	LevelA1: 1,
	LevelA2: 2,
	LevelB1: 3,
	LevelB2: 4,
	LevelC1: 5,
	LevelC2: 6,
}

// Valid reports whether the level is one of the six CEFR tiers
func (l CEFRLevel) Valid() bool {
	_, ok := cefrOrder[l]
	return ok
}

// Above reports whether the level is strictly harder than other
func (l CEFRLevel) Above(other CEFRLevel) bool {
	return cefrOrder[l] > cefrOrder[other]
}

// User represents a user in the system
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Never serialize password hash
	Role           Role      `json:"role"` // 1=User, 2=Admin, default=1
	NativeLanguage string    `json:"nativeLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	Level          CEFRLevel `json:"level"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login request with email or username
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	NativeLanguage string    `json:"nativeLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	Level          CEFRLevel `json:"level"`
}
