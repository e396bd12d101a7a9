// Command submitclient submits a recording to a running meeting-analysis
// service and polls until the job finishes, printing the analysis as JSON.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the analysis service")
	audio := flag.String("audio", "", "path to the meeting recording")
	text := flag.String("text", "", "optional path to supplementary notes")
	interval := flag.Duration("interval", 2*time.Second, "poll interval")
	timeout := flag.Duration("timeout", 30*time.Minute, "give up after this long")
	flag.Parse()

	if *audio == "" {
		log.Fatal("usage: submitclient -audio path/to/meeting.wav [-text notes.txt]")
	}

	payload, _ := json.Marshal(map[string]string{
		"audio_path":     *audio,
		"text_file_path": *text,
	})
	resp, err := http.Post(*server+"/api/process", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("submit rejected: %s: %s", resp.Status, string(body))
	}

	var submitted struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(body, &submitted); err != nil {
		log.Fatalf("submit decode: %v", err)
	}
	log.Printf("job accepted: %s", submitted.JobID)

	deadline := time.Now().Add(*timeout)
	for time.Now().Before(deadline) {
		time.Sleep(*interval)

		status, err := getJSON(*server + "/api/status/" + submitted.JobID)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		log.Printf("status: %s", status["status"])

		switch status["status"] {
		case "completed":
			result, err := http.Get(*server + "/api/result/" + submitted.JobID)
			if err != nil {
				log.Fatalf("result: %v", err)
			}
			defer result.Body.Close()
			out, _ := io.ReadAll(result.Body)
			fmt.Println(string(out))
			return
		case "failed":
			log.Fatalf("job failed: %v", status["error"])
		}
	}
	log.Fatal("timed out waiting for the job")
}

func getJSON(url string) (map[string]string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
