package codec

import "time"

// BackupVersion is the version written into exported backups.
const BackupVersion = "1.0"

// Backup is the exported document combining every study record. Sections
// are pointers so that a missing section can be told apart from an empty one.
type Backup struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Progress   *Progress    `json:"progress,omitempty"`
	Flashcards *ReviewStore `json:"flashcards,omitempty"`
	Problems   *ProblemLog  `json:"problems,omitempty"`
}
