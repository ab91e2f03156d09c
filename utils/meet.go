package utils

import (
	"classroom/config"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleCalendarURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events?conferenceDataVersion=1"
	calendarScope     = "https://www.googleapis.com/auth/calendar.events"
)

// Meeting is a created (or placeholder) video meeting
type Meeting struct {
	ID       string `json:"id"`
	MeetLink string `json:"meet_link"`
}

// CreateMeeting creates a Google Meet event via the Calendar API. When the
// service account is not configured it falls back to a locally generated
// placeholder link so scheduling still works in development.
func CreateMeeting(summary string, startTime time.Time) (*Meeting, error) {
	if config.AppConfig.GoogleClientEmail == "" || config.AppConfig.GooglePrivateKey == "" {
		return placeholderMeeting(), nil
	}

	accessToken, err := getCalendarAccessToken()
	if err != nil {
		return nil, err
	}

	event := map[string]interface{}{
		"summary": summary,
		"start":   map[string]string{"dateTime": startTime.Format(time.RFC3339)},
		"end":     map[string]string{"dateTime": startTime.Add(time.Hour).Format(time.RFC3339)},
		"conferenceData": map[string]interface{}{
			"createRequest": map[string]interface{}{
				"requestId":             uuid.NewString(),
				"conferenceSolutionKey": map[string]string{"type": "hangoutsMeet"},
			},
		},
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(googleCalendarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Calendar event creation failed: %s", resp.String())
		return nil, fmt.Errorf("calendar API error: %d", resp.StatusCode())
	}

	var created struct {
		ID          string `json:"id"`
		HangoutLink string `json:"hangoutLink"`
	}
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, fmt.Errorf("invalid calendar response: %w", err)
	}

	return &Meeting{ID: created.ID, MeetLink: created.HangoutLink}, nil
}

// getCalendarAccessToken exchanges a signed service-account assertion for an
// OAuth access token.
func getCalendarAccessToken() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(config.AppConfig.GooglePrivateKey))
	if err != nil {
		return "", fmt.Errorf("invalid Google private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   config.AppConfig.GoogleClientEmail,
		"scope": calendarScope,
		"aud":   googleTokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}

	client := resty.New()
	resp, err := client.R().
		SetFormData(map[string]string{
			"grant_type": "urn:ietf:params:oauth:grant-type:jwt-bearer",
			"assertion":  assertion,
		}).
		Post(googleTokenURL)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Google token exchange failed: %s", resp.String())
		return "", fmt.Errorf("token exchange error: %d", resp.StatusCode())
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &tokenResp); err != nil {
		return "", fmt.Errorf("invalid token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in response")
	}

	return tokenResp.AccessToken, nil
}

func placeholderMeeting() *Meeting {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return &Meeting{
		ID:       uuid.NewString(),
		MeetLink: "https://meet.google.com/" + hex.EncodeToString(buf),
	}
}
