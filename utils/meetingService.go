package utils

import (
	"fmt"
	"lms/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// MeetingRoom is the provider's response for a provisioned room
type MeetingRoom struct {
	RoomID  string `json:"room_id"`
	JoinURL string `json:"join_url"`
	Status  string `json:"status"`
}

// CreateMeetingRoom provisions a meeting room for a live session through the
// configured provider. Falls back to a locally generated room URL when no
// provider is configured, so scheduling keeps working in development.
func CreateMeetingRoom(topic string, start time.Time, durationMinutes int) (string, error) {
	if config.AppConfig.MeetingApiURL == "" {
		return fmt.Sprintf("https://meet.learnspace.local/%s", uuid.NewString()), nil
	}

	client := resty.New().SetTimeout(10 * time.Second)

	var room MeetingRoom
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.MeetingApiKey).
		SetBody(map[string]interface{}{
			"topic":            topic,
			"start_time":       start.UTC().Format(time.RFC3339),
			"duration_minutes": durationMinutes,
		}).
		SetResult(&room).
		Post(config.AppConfig.MeetingApiURL + "/rooms")
	if err != nil {
		log.Printf("Error creating meeting room: %v", err)
		return "", err
	}

	if resp.IsError() {
		log.Printf("Meeting provider returned %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("meeting provider returned status %d", resp.StatusCode())
	}

	if room.JoinURL == "" {
		return "", fmt.Errorf("meeting provider returned no join URL")
	}

	return room.JoinURL, nil
}

// CancelMeetingRoom tells the provider a room is no longer needed. Best effort,
// cancellation of the session does not depend on it.
func CancelMeetingRoom(joinURL string) {
	if config.AppConfig.MeetingApiURL == "" || joinURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.MeetingApiKey).
		SetBody(map[string]string{"join_url": joinURL}).
		Post(config.AppConfig.MeetingApiURL + "/rooms/cancel")
	if err != nil {
		log.Printf("Error cancelling meeting room: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Meeting provider cancel returned %d: %s", resp.StatusCode(), resp.String())
	}
}
