// Command shadow_compare replays read-only requests against the legacy Express
// server and the Go API and reports where their payloads diverge. Both sides
// are signed in first; the Go envelope is unwrapped to its data field.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
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

type targetFile struct {
	Targets []target `json:"targets"`
}

type side struct {
	name   string
	base   string
	client *http.Client
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		username    string
		password    string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy Express base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.StringVar(&username, "username", os.Getenv("ADMIN_USERNAME"), "Admin username")
	flag.StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "Admin password")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	goSide, err := newSide("go", goBase, timeout)
	if err != nil {
		log.Fatalf("init go client: %v", err)
	}
	legacySide, err := newSide("legacy", legacyBase, timeout)
	if err != nil {
		log.Fatalf("init legacy client: %v", err)
	}
	for _, s := range []*side{goSide, legacySide} {
		if err := s.login(username, password); err != nil {
			log.Fatalf("%s login failed: %v", s.name, err)
		}
	}

	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)
	for _, t := range targets {
		comp := compareTarget(goSide, legacySide, t)
		switch {
		case comp.Error != nil && t.Critical:
			breaking++
		case comp.Error == nil && (!comp.StatusMatch || !comp.BodyMatch):
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func newSide(name, base string, timeout time.Duration) (*side, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{
		Timeout: timeout,
		Jar:     jar,
		// A redirect means the session was rejected; report it instead of following.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &side{name: name, base: strings.TrimRight(base, "/"), client: client}, nil
}

func (s *side) login(username, password string) error {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.base+"/api/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (s *side) do(tgt target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	if method != http.MethodGet {
		return 0, nil, 0, fmt.Errorf("refusing non-GET target %s %s", method, tgt.Path)
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, s.base+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read %s body: %w", s.name, err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compareTarget(goSide, legacySide *side, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, goErr := goSide.do(tgt)
	legacyStatus, legacyBody, legacyDur, legacyErr := legacySide.do(tgt)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur
	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = bodiesEqual(unwrapEnvelope(goBody), legacyBody)
	return comp
}

// unwrapEnvelope returns the data field of a JSON envelope, or the body as is
// when it is not one.
func unwrapEnvelope(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Data) == 0 {
		return body
	}
	return env.Data
}

func bodiesEqual(a, b []byte) bool {
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
	aj = normalize(aj)
	bj = normalize(bj)
	return reflect.DeepEqual(aj, bj)
}

// normalize folds integral floats to int64 so 82 and 82.0 compare equal.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return v
	}
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
