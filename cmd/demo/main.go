package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
)

const recapURL = "http://localhost:8080/api"

const sampleTranscript = `Alice: Welcome everyone, let's review the Q3 roadmap.
Bob: The payments migration is on track, we should ship by Friday.
Alice: Great. Carol, can you own the rollout announcement?
Carol: Yes, I'll draft it this week.
Alice: Then we're agreed: ship Friday, announce Monday.`

func main() {
	// 1️⃣ Upload a transcript file
	transcript, title, err := uploadTranscript("planning.txt", sampleTranscript)
	if err != nil {
		log.Fatalf("❌ failed to upload transcript: %v", err)
	}
	fmt.Printf("✅ Uploaded transcript %q (%d chars)\n", title, len(transcript))

	// 2️⃣ Generate a summary under an instruction
	summary, err := generateSummary(transcript, "create a concise executive summary with key decisions and action items")
	if err != nil {
		log.Fatalf("❌ failed to generate summary: %v", err)
	}
	fmt.Printf("✅ Generated summary:\n%s\n\n", summary)

	// 3️⃣ Save it (explicit save; the id comes back from the store)
	id, err := saveSummary(transcript, summary, title)
	if err != nil {
		log.Fatalf("❌ failed to save summary: %v", err)
	}
	fmt.Printf("✅ Saved summary: %s\n", id)

	// 4️⃣ Edit and update the same record
	edited := summary + "\n\nAction: ship by Friday."
	if err := updateSummary(id, edited); err != nil {
		log.Fatalf("❌ failed to update summary: %v", err)
	}
	fmt.Println("✅ Updated summary.")

	// 5️⃣ Email it
	if err := sendSummary([]string{"team@example.com"}, edited, title); err != nil {
		log.Fatalf("❌ failed to send summary: %v", err)
	}
	fmt.Println("✅ Sent summary email.")
}

func uploadTranscript(filename string, content string) (string, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return "", "", fmt.Errorf("failed to write transcript: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequest("POST", recapURL+"/upload-transcript", body)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("status: %s body: %s", resp.Status, string(b))
	}

	var res struct {
		Transcript   string `json:"transcript"`
		MeetingTitle string `json:"meetingTitle"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", "", err
	}
	return res.Transcript, res.MeetingTitle, nil
}

func generateSummary(transcript string, customPrompt string) (string, error) {
	payload := map[string]string{
		"transcript":   transcript,
		"customPrompt": customPrompt,
	}

	var res struct {
		Summary string `json:"summary"`
	}
	if err := post("/generate-summary", payload, &res); err != nil {
		return "", err
	}
	return res.Summary, nil
}

func saveSummary(transcript string, summary string, title string) (string, error) {
	payload := map[string]string{
		"transcript":   transcript,
		"summary":      summary,
		"meetingTitle": title,
	}

	var res struct {
		Id string `json:"id"`
	}
	if err := post("/save-summary", payload, &res); err != nil {
		return "", err
	}
	return res.Id, nil
}

func updateSummary(id string, summary string) error {
	payload := map[string]string{
		"id":      id,
		"summary": summary,
	}

	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("PUT", recapURL+"/save-summary", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status: %s body: %s", resp.Status, string(b))
	}

	return nil
}

func sendSummary(recipients []string, summary string, title string) error {
	payload := map[string]any{
		"recipients":   recipients,
		"summary":      summary,
		"meetingTitle": title,
	}

	return post("/send-email", payload, &struct{}{})
}

func post(path string, payload any, out any) error {
	body, _ := json.Marshal(payload)

	resp, err := http.Post(recapURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status: %s body: %s", resp.Status, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
