package model

// WorkerRole separates time-tracked workers from the employers who
// view team status and assign tasks.
type WorkerRole string

const (
	RoleEmployee WorkerRole = "employee"
	RoleEmployer WorkerRole = "employer"
)

// Worker is the account entity. The time-clock state itself lives in
// WorkerTimeRecord, one per worker, created at provisioning time.
type Worker struct {
	BaseModel
	PublicID     int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Email        string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	Name         string     `gorm:"type:varchar(128);not null;default:''" json:"name"`
	Role         WorkerRole `gorm:"type:varchar(16);not null;default:'employee';index:idx_workers_role" json:"role"`
	PasswordHash []byte     `gorm:"type:bytea;not null" json:"-"`
	Phone        string     `gorm:"type:varchar(32);not null;default:''" json:"-"` // reminder SMS target, optional
	Timezone     string     `gorm:"type:varchar(64);not null;default:'Asia/Kolkata'" json:"timezone"`
}

func (Worker) TableName() string {
	return "workers"
}
