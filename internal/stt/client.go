// Package stt transcribes recorded audio with the Google Cloud
// Speech-to-Text API and hands results to the clipboard.
package stt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sergiopachon/birdie/internal/logging"
)

const defaultBaseURL = "https://speech.googleapis.com/v1/speech:recognize"

// Recording parameters produced by the capture layer.
const (
	audioEncoding = "WEBM_OPUS"
	sampleRate    = 48000
)

// Result is the outcome of a transcription attempt. Failures are
// reported in Error; transport-level problems also surface there so the
// caller never has to branch on two channels.
type Result struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type recognizeRequest struct {
	Audio  audioContent      `json:"audio"`
	Config recognitionConfig `json:"config"`
}

type audioContent struct {
	Content string `json:"content"`
}

type recognitionConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Client calls the Speech-to-Text endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        logging.Logger
}

// NewClient creates an STT client.
func NewClient(log logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		log:        log,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// Tests point this at a local server.
func NewClientWithBaseURL(baseURL string, log logging.Logger) *Client {
	c := NewClient(log)
	c.baseURL = baseURL
	return c
}

// Transcribe sends the raw audio to the recognition API and returns the
// top transcript. The audio is base64-encoded on the wire.
func (c *Client) Transcribe(audio []byte, apiKey, languageCode string) Result {
	if apiKey == "" {
		return Result{Success: false, Error: "API key not configured. Please add your Google Cloud API key in settings."}
	}

	reqBody := recognizeRequest{
		Audio: audioContent{Content: base64.StdEncoding.EncodeToString(audio)},
		Config: recognitionConfig{
			Encoding:        audioEncoding,
			SampleRateHertz: sampleRate,
			LanguageCode:    languageCode,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("encode request: %v", err)}
	}

	url := fmt.Sprintf("%s?key=%s", c.baseURL, apiKey)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return Result{Success: false, Error: "Invalid API key. Please check your Google Cloud API key."}
	case http.StatusForbidden:
		return Result{Success: false, Error: "Access denied. Please ensure Speech-to-Text API is enabled in Google Cloud."}
	}

	var decoded recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("Failed to parse API response: %v", err)}
	}
	if len(decoded.Results) == 0 || len(decoded.Results[0].Alternatives) == 0 {
		return Result{Success: false, Error: "No transcription results found"}
	}

	transcript := decoded.Results[0].Alternatives[0].Transcript
	c.log.Info("transcription succeeded", "chars", len(transcript))
	return Result{Text: transcript, Success: true}
}

// CopyToClipboard places the transcript on the system clipboard.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
