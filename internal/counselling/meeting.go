package counselling

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// MeetingLinkGenerator produces the video-call URL attached to an approved
// session. The same date and time always map to the same room.
type MeetingLinkGenerator interface {
	Generate(date time.Time, timeOfDay string) string
}

type jitsiLinkGenerator struct{}

func NewMeetingLinkGenerator() MeetingLinkGenerator {
	return jitsiLinkGenerator{}
}

func (jitsiLinkGenerator) Generate(date time.Time, timeOfDay string) string {
	sum := sha256.Sum256([]byte(date.Format("2006-01-02") + "T" + timeOfDay))
	return fmt.Sprintf("https://meet.jit.si/CareerGo-%s", hex.EncodeToString(sum[:8]))
}
