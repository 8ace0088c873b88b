package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

func main() {
	serverURL := flag.String("server", "http://127.0.0.1:8000", "Relay server URL")
	flag.Parse()

	if flag.NArg() == 0 {
		slog.Error("Usage: ask [-server URL] <question>")
		os.Exit(2)
	}
	question := strings.Join(flag.Args(), " ")

	jsonData, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		slog.Error("Failed to marshal request", "error", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("%s/query", strings.TrimRight(*serverURL, "/"))
	resp, err := http.Post(url, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		slog.Error("Could not connect to server", "url", url, "error", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var out struct {
		Response *string `json:"response"`
		Error    string  `json:"error"`
		Message  string  `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Error("Failed to decode response", "status", resp.StatusCode, "error", err)
		os.Exit(1)
	}

	// the relay may answer 200 with an error body
	if out.Response == nil {
		msg := out.Error
		if out.Message != "" {
			msg = fmt.Sprintf("%s: %s", out.Error, out.Message)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}

	fmt.Println(*out.Response)
}
