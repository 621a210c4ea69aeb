package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type Session struct {
	ID           string `json:"id"`
	SessionCode  string `json:"sessionCode"`
	ShareableURL string `json:"shareableUrl"`
	Status       string `json:"status"`
	TrophyCount  int64  `json:"trophyCount"`
}

type Trophy struct {
	ID              string  `json:"id"`
	RecipientName   string  `json:"recipientName"`
	AchievementText string  `json:"achievementText"`
	SubmitterName   *string `json:"submitterName"`
	DisplayOrder    int     `json:"displayOrder"`
}

type TrophyDetails struct {
	ID              string  `json:"id"`
	RecipientName   string  `json:"recipientName"`
	AchievementText string  `json:"achievementText"`
	DisplayOrder    int     `json:"displayOrder"`
	NextTrophyID    *string `json:"nextTrophyId"`
	IsLastTrophy    bool    `json:"isLastTrophy"`
}

// CreateSession opens a new trophy-sharing session
func (c *APIClient) CreateSession(organizerName string) (*Session, error) {
	body := map[string]string{"organizerName": organizerName}

	resp, err := c.post("/sessions", body)
	if err != nil {
		return nil, fmt.Errorf("create session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create session failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result Session
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// SubmitTrophy adds a nomination to the session
func (c *APIClient) SubmitTrophy(code, recipient, achievement, submitter string) (*Trophy, error) {
	body := map[string]string{
		"recipientName":   recipient,
		"achievementText": achievement,
		"submitterName":   submitter,
	}

	resp, err := c.post("/sessions/"+code+"/trophies", body)
	if err != nil {
		return nil, fmt.Errorf("submit trophy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("submit trophy failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result Trophy
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// ListTrophies returns the session's trophies in presentation order
func (c *APIClient) ListTrophies(code string) ([]Trophy, error) {
	resp, err := c.get("/sessions/" + code + "/trophies")
	if err != nil {
		return nil, fmt.Errorf("list trophies request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list trophies failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result []Trophy
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result, nil
}

// StartPresentation flips the session into presenting
func (c *APIClient) StartPresentation(code string) (*Session, error) {
	resp, err := c.post("/sessions/"+code+"/present", nil)
	if err != nil {
		return nil, fmt.Errorf("start presentation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("start presentation failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result Session
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// GetTrophyDetails fetches one trophy with its next-trophy navigation
func (c *APIClient) GetTrophyDetails(code, trophyID string) (*TrophyDetails, error) {
	resp, err := c.get("/sessions/" + code + "/trophies/" + trophyID)
	if err != nil {
		return nil, fmt.Errorf("get trophy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get trophy failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result TrophyDetails
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func (c *APIClient) post(path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *APIClient) get(path string) (*http.Response, error) {
	return c.httpClient.Get(c.baseURL + path)
}
