package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8087"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numDays      = 365
)

var runTypes = []string{"Easy", "Tempo", "Intervals", "Hill", "Long", "Recovery", "Strength"}

var filterTexts = []string{"park", "track", "trail", "hill", "easy"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// ids holds the entries created during the run so updates and duplicates
// have something to target.
var ids = struct {
	sync.Mutex
	list []string
}{}

func rememberID(id string) {
	ids.Lock()
	defer ids.Unlock()
	ids.list = append(ids.list, id)
}

func randomID(rng *rand.Rand) string {
	ids.Lock()
	defer ids.Unlock()
	if len(ids.list) == 0 {
		return ""
	}
	return ids.list[rng.Intn(len(ids.list))]
}

func main() {
	fmt.Println("=== runlog load test ===")
	fmt.Printf("Workers: %d | Duration: %s | Days: %d\n\n", numWorkers, testDuration, numDays)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/runs")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding runs (POST /runs) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doAdd(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% writes, 50% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doAdd(rng)
		case r < 0.45:
			return doUpdate(rng)
		case r < 0.50:
			return doDuplicate(rng)
		case r < 0.70:
			return doList(rng)
		case r < 0.85:
			return doStats("/stats")
		default:
			return doStats("/stats/weekly")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% writes, 90% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doAdd(rng)
		case r < 0.40:
			return doList(rng)
		case r < 0.60:
			return doStats("/stats")
		case r < 0.80:
			return doStats("/stats/monthly")
		default:
			return doStats("/export/csv")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomRun(rng *rand.Rand) map[string]interface{} {
	day := time.Now().AddDate(0, 0, -rng.Intn(numDays))
	distance := float64(rng.Intn(2000)+100) / 100
	body := map[string]interface{}{
		"date":        day.Format("2006-01-02"),
		"distanceKm":  distance,
		"durationSec": int(distance * float64(240+rng.Intn(180))),
		"type":        runTypes[rng.Intn(len(runTypes))],
		"tags":        []string{filterTexts[rng.Intn(len(filterTexts))]},
		"status":      "done",
	}
	if rng.Float64() < 0.2 {
		body["status"] = "planned"
	}
	if rng.Float64() < 0.5 {
		body["rpe"] = rng.Intn(10) + 1
	}
	return body
}

func post(endpoint, target string, body interface{}, want int) (result, []byte) {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	start := time.Now()
	resp, err := httpClient.Post(target, "application/json", reader)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}, nil
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}, payload
}

func doAdd(rng *rand.Rand) result {
	res, payload := post("POST /runs", baseURL+"/runs", randomRun(rng), http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	if !res.err && json.Unmarshal(payload, &created) == nil && created.ID != "" {
		rememberID(created.ID)
	}
	return res
}

func doUpdate(rng *rand.Rand) result {
	id := randomID(rng)
	if id == "" {
		return doAdd(rng)
	}
	body := randomRun(rng)
	body["id"] = id
	res, _ := post("POST /runs/update", baseURL+"/runs/update", body, http.StatusOK)
	return res
}

func doDuplicate(rng *rand.Rand) result {
	id := randomID(rng)
	if id == "" {
		return doAdd(rng)
	}
	res, payload := post("POST /runs/duplicate", baseURL+"/runs/duplicate?id="+url.QueryEscape(id), nil, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	if !res.err && json.Unmarshal(payload, &created) == nil && created.ID != "" {
		rememberID(created.ID)
	}
	return res
}

func doList(rng *rand.Rand) result {
	q := url.Values{}
	if rng.Float64() < 0.5 {
		q.Set("type", runTypes[rng.Intn(len(runTypes))])
	}
	if rng.Float64() < 0.3 {
		q.Set("text", filterTexts[rng.Intn(len(filterTexts))])
	}
	if rng.Float64() < 0.3 {
		q.Set("sort", "distance")
	}
	return get("GET /runs", baseURL+"/runs?"+q.Encode())
}

func doStats(path string) result {
	return get("GET "+path, baseURL+path)
}

func get(endpoint, target string) result {
	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
