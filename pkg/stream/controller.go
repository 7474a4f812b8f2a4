package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/internal/httpc"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
)

// ClipInfo mirrors the daemon's clip listing.
type ClipInfo struct {
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	FPS       float64 `json:"fps"`
	Loop      bool    `json:"loop"`
	LoopMode  string  `json:"loop_mode"`
	Keyframes int     `json:"keyframes"`
}

// IKResult mirrors the daemon's IK solve response.
type IKResult struct {
	Converged bool    `json:"converged"`
	Bone      int     `json:"bone"`
	TipX      float64 `json:"tip_x"`
	TipY      float64 `json:"tip_y"`
}

// Controller drives a daemon's playback over its REST API.
type Controller struct {
	baseURL string
	client  *http.Client
}

// NewController creates a controller for the given base URL,
// e.g. "http://localhost:8090".
func NewController(baseURL string) *Controller {
	return &Controller{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpc.Client,
	}
}

// State fetches the daemon's current frame.
func (c *Controller) State() (animator.Frame, error) {
	var frame animator.Frame
	err := c.get("/api/state", &frame)
	return frame, err
}

// Clips lists the clips registered with the daemon.
func (c *Controller) Clips() ([]ClipInfo, error) {
	var body struct {
		Clips []ClipInfo `json:"clips"`
	}
	if err := c.get("/api/clips", &body); err != nil {
		return nil, err
	}
	return body.Clips, nil
}

// Play starts the named clip from its beginning.
func (c *Controller) Play(name string) (animator.Frame, error) {
	req := struct {
		Clip string `json:"clip"`
	}{name}

	var frame animator.Frame
	err := c.post("/api/play", req, &frame)
	return frame, err
}

// PlayWithSpeed starts the named clip at a speed multiplier.
func (c *Controller) PlayWithSpeed(name string, speed float64) (animator.Frame, error) {
	req := struct {
		Clip  string  `json:"clip"`
		Speed float64 `json:"speed"`
	}{name, speed}

	var frame animator.Frame
	err := c.post("/api/play", req, &frame)
	return frame, err
}

// Stop halts playback and rewinds.
func (c *Controller) Stop() (animator.Frame, error) {
	var frame animator.Frame
	err := c.post("/api/stop", nil, &frame)
	return frame, err
}

// Pause freezes playback.
func (c *Controller) Pause() (animator.Frame, error) {
	var frame animator.Frame
	err := c.post("/api/pause", nil, &frame)
	return frame, err
}

// Resume continues paused playback.
func (c *Controller) Resume() (animator.Frame, error) {
	var frame animator.Frame
	err := c.post("/api/resume", nil, &frame)
	return frame, err
}

// Blend mixes two clips at a fixed alpha.
func (c *Controller) Blend(first, second string, alpha float64) (animator.Frame, error) {
	req := struct {
		First  string  `json:"first"`
		Second string  `json:"second"`
		Alpha  float64 `json:"alpha"`
	}{first, second, alpha}

	var frame animator.Frame
	err := c.post("/api/blend", req, &frame)
	return frame, err
}

// TransitionTo cross-fades into the named clip over duration seconds.
func (c *Controller) TransitionTo(name string, duration float64) (animator.Frame, error) {
	req := struct {
		Clip     string   `json:"clip"`
		Duration *float64 `json:"duration"`
	}{name, &duration}

	var frame animator.Frame
	err := c.post("/api/transition", req, &frame)
	return frame, err
}

// SolveIK asks the daemon to aim the named bone's tip at a target.
func (c *Controller) SolveIK(boneName string, x, y float64) (IKResult, error) {
	req := struct {
		BoneName string  `json:"bone_name"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
	}{boneName, x, y}

	var result IKResult
	err := c.post("/api/ik", req, &result)
	return result, err
}

func (c *Controller) get(path string, out interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	return c.decode(path, resp, out)
}

func (c *Controller) post(path string, body, out interface{}) error {
	data := []byte("{}")
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("POST %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	return c.decode(path, resp, out)
}

func (c *Controller) decode(path string, resp *http.Response, out interface{}) error {
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon rejected %s: %s", path, apiErr.Error)
		}
		return fmt.Errorf("daemon rejected %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
