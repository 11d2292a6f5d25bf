package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

var maxReadings int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration
	var created, limited, failed atomic.Int64

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxReadings {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch status := postReading(); status {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusTooManyRequests:
				limited.Add(1)
			default:
				failed.Add(1)
			}
			fmt.Printf("\rposted reading %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rposted %v readings: created=%v limited=%v failed=%v used time=%v seconds, throughput=%v action/second\n",
		maxReadings, created.Load(), limited.Load(), failed.Load(),
		usedTime.Seconds(), float64(maxReadings)/usedTime.Seconds(),
	)

	for _, path := range []string{"/report", "/report/weekly"} {
		startTime = time.Now()
		body, err := postReport(path)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			continue
		}
		fmt.Printf("%s done in %v seconds: %s\n", path, time.Since(startTime).Seconds(), body)
	}
}

func rndIntn(n int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Intn(n)
}

func postReading() int {
	at := time.Now().Add(-time.Duration(rndIntn(14*24*60)) * time.Minute)
	payload := map[string]any{
		"reading_datetime": at.Format("02-01-2006 15:04"),
		"systole":          100 + rndIntn(60),
		"dystole":          60 + rndIntn(40),
	}

	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/readings", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return 0
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func postReport(path string) (map[string]any, error) {
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("response status code != 200: %v", resp.Status)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
