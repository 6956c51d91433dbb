package assist

import (
	"fmt"
	"time"
)

// DraftHeader returns the standard warning placed above AI-generated drafts
func DraftHeader() string {
	return `**DRAFT - REQUIRES HUMAN REVIEW**

_This output is AI-generated and should be verified before use._

---

`
}

// RequirementsReminder returns the trailing reminder for translated requirements
func RequirementsReminder() string {
	return "\n\n---\n**REMINDER:** This is a draft requiring human review. " +
		"No timelines, assignments, or commitments have been made.\n"
}

// Disclaimer returns the standard timestamped footer
func Disclaimer(now time.Time) string {
	return fmt.Sprintf("\n---\n_Generated at %s | Session-only data - not stored_\n",
		now.Format("2006-01-02 15:04:05"))
}
