package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"
)

var (
	nicknames  = []string{"alice", "forum", "hermit"}
	categories = []string{"funny", "news", "cats"}
	dates      = []string{"2024-01-01", "2024-03-01", "2024/06/01", "2024-13-01"}
)

type options struct {
	baseURL  string
	workers  int
	duration time.Duration
	maxPage  int
}

func newClient(workers int) *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        workers * 4,
			MaxIdleConnsPerHost: workers * 4,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

// recorder collects latencies per endpoint label and counts responses by
// status class.
type recorder struct {
	mu      sync.Mutex
	samples map[string][]time.Duration
	classes map[string]map[int]int
	failed  map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		samples: make(map[string][]time.Duration),
		classes: make(map[string]map[int]int),
		failed:  make(map[string]int),
	}
}

func (r *recorder) add(endpoint string, status int, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[endpoint] = append(r.samples[endpoint], latency)
	if status == 0 {
		r.failed[endpoint]++
		return
	}
	if r.classes[endpoint] == nil {
		r.classes[endpoint] = make(map[int]int)
	}
	r.classes[endpoint][status/100]++
}

type loadTest struct {
	opts   options
	client *http.Client
}

func main() {
	var opts options
	flag.StringVar(&opts.baseURL, "url", "http://127.0.0.1:8090", "base URL of the wallfeed server")
	flag.IntVar(&opts.workers, "workers", 50, "concurrent workers")
	flag.DurationVar(&opts.duration, "d", 10*time.Second, "duration of each phase")
	flag.IntVar(&opts.maxPage, "pages", 5, "highest page number requested")
	flag.Parse()

	lt := &loadTest{opts: opts, client: newClient(opts.workers)}
	fmt.Printf("wallfeed load test against %s: %d workers, %s per phase\n", opts.baseURL, opts.workers, opts.duration)

	if err := lt.waitHealthy(6 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lt.phase("anonymous browsing", func(rng *rand.Rand, rec *recorder) {
		lt.status(rng, rec, http.Header{})
	})
	lt.phase("mixed viewers, 1 in 5 polls", func(rng *rand.Rand, rec *recorder) {
		h := randomViewer(rng)
		if rng.Intn(5) == 0 {
			lt.update(rng, rec, h)
			return
		}
		lt.status(rng, rec, h)
	})
}

func (lt *loadTest) waitHealthy(limit time.Duration) error {
	deadline := time.Now().Add(limit)
	for time.Now().Before(deadline) {
		resp, err := lt.client.Get(lt.opts.baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not answer /health within %s", lt.opts.baseURL, limit)
}

func (lt *loadTest) phase(name string, work func(rng *rand.Rand, rec *recorder)) {
	fmt.Printf("\n== %s\n", name)
	ctx, cancel := context.WithTimeout(context.Background(), lt.opts.duration)
	defer cancel()

	rec := newRecorder()
	var wg sync.WaitGroup
	for i := 0; i < lt.opts.workers; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			for ctx.Err() == nil {
				work(rng, rec)
			}
		}(rand.New(rand.NewSource(time.Now().UnixNano() + int64(i))))
	}
	wg.Wait()

	report(rec, lt.opts.duration)
}

func randomViewer(rng *rand.Rand) http.Header {
	h := http.Header{}
	switch rng.Intn(3) {
	case 0:
		h.Set("X-Local-User", strconv.Itoa(rng.Intn(3)+1))
	case 1:
		h.Set("X-Remote-Contact", strconv.Itoa(rng.Intn(30)+1))
		h.Set("X-Remote-Groups", "5")
	}
	if rng.Intn(4) == 0 {
		h.Set("X-Mobile", "true")
	}
	return h
}

func (lt *loadTest) status(rng *rand.Rand, rec *recorder, h http.Header) {
	segments := []string{"profile", nicknames[rng.Intn(len(nicknames))], "status"}
	label := "status"
	if rng.Intn(10) < 3 {
		segments = append(segments, categories[rng.Intn(len(categories))])
		label = "status+category"
	}
	if rng.Intn(10) < 2 {
		segments = append(segments, dates[rng.Intn(len(dates))])
		label = "status+date"
	}
	url := fmt.Sprintf("%s/%s?page=%d", lt.opts.baseURL, strings.Join(segments, "/"), rng.Intn(lt.opts.maxPage)+1)
	lt.get(rec, label, url, h)
}

func (lt *loadTest) update(rng *rand.Rand, rec *recorder, h http.Header) {
	lt.get(rec, "update", lt.opts.baseURL+"/update/"+nicknames[rng.Intn(len(nicknames))], h)
}

func (lt *loadTest) get(rec *recorder, label, url string, h http.Header) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		rec.add(label, 0, 0)
		return
	}
	req.Header = h

	start := time.Now()
	resp, err := lt.client.Do(req)
	if err != nil {
		rec.add(label, 0, time.Since(start))
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	rec.add(label, resp.StatusCode, time.Since(start))
}

func report(rec *recorder, duration time.Duration) {
	labels := make([]string, 0, len(rec.samples))
	for label := range rec.samples {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "endpoint\treqs\t2xx\t4xx\t5xx\tfailed\tp50\tp95\tp99\tmax\t")

	var total, broken int
	for _, label := range labels {
		lat := rec.samples[label]
		slices.Sort(lat)
		c := rec.classes[label]
		total += len(lat)
		broken += c[5] + rec.failed[label]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t\n",
			label, len(lat), c[2], c[4], c[5], rec.failed[label],
			quantile(lat, 0.50), quantile(lat, 0.95), quantile(lat, 0.99), quantile(lat, 1))
	}
	_ = tw.Flush()

	if total == 0 {
		fmt.Println("no requests completed")
		return
	}
	fmt.Printf("%d requests, %.0f req/s, %d server errors or transport failures (%.2f%%)\n",
		total, float64(total)/duration.Seconds(), broken, 100*float64(broken)/float64(total))
}

// quantile expects sorted input.
func quantile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := int(q * float64(len(sorted)-1))
	return sorted[i].Round(10 * time.Microsecond)
}
