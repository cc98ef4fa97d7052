// Command shadow_compare replays read-only requests against the legacy PHP
// API and this service, reporting status and body differences. It is meant to
// run against the shared database during cutover verification.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type result struct {
	Target       target
	GoStatus     int
	LegacyStatus int
	StatusMatch  bool
	BodyMatch    bool
	GoDuration   time.Duration
	LegacyTime   time.Duration
	Err          error
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		ignoreKeys  string
		timeout     time.Duration
	)
	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "Legacy PHP API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "JSON targets file")
	flag.StringVar(&ignoreKeys, "ignore", "", "comma separated JSON keys dropped before comparing bodies")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("load targets: %v", err)
	}

	ignored := map[string]bool{}
	for _, key := range strings.Split(ignoreKeys, ",") {
		if key = strings.TrimSpace(key); key != "" {
			ignored[key] = true
		}
	}

	client := &http.Client{Timeout: timeout}
	breaking := 0
	results := make([]result, 0, len(targets))
	for _, tgt := range targets {
		res := compare(client, goBase, legacyBase, tgt, ignored)
		if (res.Err != nil || !res.StatusMatch || !res.BodyMatch) && tgt.Critical {
			breaking++
		}
		results = append(results, res)
	}

	report(results)
	fmt.Printf("Breaking diffs: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compare(client *http.Client, goBase, legacyBase string, tgt target, ignored map[string]bool) result {
	res := result{Target: tgt}

	goStatus, goBody, goDur, err := fetch(client, goBase, tgt)
	if err != nil {
		res.Err = fmt.Errorf("go request: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyDur, err := fetch(client, legacyBase, tgt)
	if err != nil {
		res.Err = fmt.Errorf("legacy request: %w", err)
		return res
	}

	res.GoStatus = goStatus
	res.LegacyStatus = legacyStatus
	res.GoDuration = goDur
	res.LegacyTime = legacyDur
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody, ignored)
	return res
}

func fetch(client *http.Client, base string, tgt target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func bodiesEqual(a, b []byte, ignored map[string]bool) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj, ignored)
	normalize(&bj, ignored)
	return reflect.DeepEqual(aj, bj)
}

// normalize strips ignored keys and collapses whole-number floats so that
// PHP's integer encoding compares equal to Go's.
func normalize(v *interface{}, ignored map[string]bool) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if ignored[k] {
				delete(val, k)
				continue
			}
			normalize(&inner, ignored)
			val[k] = inner
		}
	case []interface{}:
		for i, inner := range val {
			normalize(&inner, ignored)
			val[i] = inner
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func report(results []result) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  go=%d (%s) legacy=%d (%s) status-match=%t body-match=%t critical=%t\n",
			res.GoStatus, res.GoDuration, res.LegacyStatus, res.LegacyTime,
			res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
