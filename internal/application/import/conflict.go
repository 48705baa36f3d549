package importapp

// ConflictMode defines how to handle rows that collide with existing records
type ConflictMode string

const (
	// ConflictModeSkip skips rows that conflict with existing records
	ConflictModeSkip ConflictMode = "skip"
	// ConflictModeUpdate updates existing records with the imported data
	ConflictModeUpdate ConflictMode = "update"
	// ConflictModeFail records an error for conflicting rows
	ConflictModeFail ConflictMode = "fail"
)

// IsValid checks if the conflict mode is valid
func (m ConflictMode) IsValid() bool {
	switch m {
	case ConflictModeSkip, ConflictModeUpdate, ConflictModeFail:
		return true
	}
	return false
}
