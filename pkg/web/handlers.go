package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

// ClipInfo summarizes a registered clip.
type ClipInfo struct {
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	FPS       float64 `json:"fps"`
	Loop      bool    `json:"loop"`
	LoopMode  string  `json:"loop_mode"`
	Keyframes int     `json:"keyframes"`
}

// PlayRequest is the body for POST /api/play.
type PlayRequest struct {
	Clip      string  `json:"clip"`
	ResetTime *bool   `json:"reset_time"`
	Speed     float64 `json:"speed"`
}

// BlendRequest is the body for POST /api/blend.
type BlendRequest struct {
	First  string  `json:"first"`
	Second string  `json:"second"`
	Alpha  float64 `json:"alpha"`
}

// TransitionRequest is the body for POST /api/transition.
type TransitionRequest struct {
	Clip     string   `json:"clip"`
	Duration *float64 `json:"duration"`
}

// IKRequest is the body for POST /api/ik. The end bone may be named
// either by id or by name.
type IKRequest struct {
	Bone       *int    `json:"bone"`
	BoneName   string  `json:"bone_name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Iterations int     `json:"iterations"`
	Tolerance  float64 `json:"tolerance"`
}

// IKResponse reports the solve outcome for POST /api/ik.
type IKResponse struct {
	Converged bool    `json:"converged"`
	Bone      int     `json:"bone"`
	TipX      float64 `json:"tip_x"`
	TipY      float64 `json:"tip_y"`
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.Lock()
	frame := s.anim.ExportFrame()
	s.mu.Unlock()
	return c.JSON(frame)
}

func (s *Server) handleClips(c *fiber.Ctx) error {
	s.mu.Lock()
	names := s.anim.ClipNames()
	infos := make([]ClipInfo, 0, len(names))
	for _, name := range names {
		cl, ok := s.anim.Clip(name)
		if !ok {
			continue
		}
		infos = append(infos, ClipInfo{
			Name:      cl.Name(),
			Duration:  cl.Duration(),
			FPS:       cl.FPS,
			Loop:      cl.Loop,
			LoopMode:  cl.Mode.String(),
			Keyframes: cl.Len(),
		})
	}
	s.mu.Unlock()

	return c.JSON(fiber.Map{"clips": infos})
}

func (s *Server) handleSkeleton(c *fiber.Ctx) error {
	s.mu.Lock()
	snap := s.anim.Skeleton().Snapshot()
	s.mu.Unlock()
	return c.JSON(snap)
}

func (s *Server) handlePlay(c *fiber.Ctx) error {
	var req PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Clip == "" {
		return badRequest(c, "clip is required")
	}

	opts := animator.DefaultPlayOptions()
	if req.ResetTime != nil {
		opts.ResetTime = *req.ResetTime
	}
	if req.Speed != 0 {
		opts.Speed = req.Speed
	}

	s.mu.Lock()
	err := s.anim.PlayWithOptions(req.Clip, opts)
	frame := s.anim.ExportFrame()
	s.mu.Unlock()

	if err != nil {
		return controlError(c, err)
	}
	return c.JSON(frame)
}

func (s *Server) handleStop(c *fiber.Ctx) error {
	s.mu.Lock()
	s.anim.Stop()
	frame := s.anim.ExportFrame()
	s.mu.Unlock()
	return c.JSON(frame)
}

func (s *Server) handlePause(c *fiber.Ctx) error {
	s.mu.Lock()
	s.anim.Pause()
	frame := s.anim.ExportFrame()
	s.mu.Unlock()
	return c.JSON(frame)
}

func (s *Server) handleResume(c *fiber.Ctx) error {
	s.mu.Lock()
	s.anim.Resume()
	frame := s.anim.ExportFrame()
	s.mu.Unlock()
	return c.JSON(frame)
}

func (s *Server) handleBlend(c *fiber.Ctx) error {
	var req BlendRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.First == "" || req.Second == "" {
		return badRequest(c, "first and second clips are required")
	}

	s.mu.Lock()
	err := s.anim.Blend(req.First, req.Second, req.Alpha)
	frame := s.anim.ExportFrame()
	s.mu.Unlock()

	if err != nil {
		return controlError(c, err)
	}
	return c.JSON(frame)
}

func (s *Server) handleTransition(c *fiber.Ctx) error {
	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Clip == "" {
		return badRequest(c, "clip is required")
	}

	duration := animator.DefaultTransitionDuration
	if req.Duration != nil {
		duration = *req.Duration
	}

	s.mu.Lock()
	err := s.anim.TransitionTo(req.Clip, duration)
	frame := s.anim.ExportFrame()
	s.mu.Unlock()

	if err != nil {
		return controlError(c, err)
	}
	return c.JSON(frame)
}

func (s *Server) handleIK(c *fiber.Ctx) error {
	var req IKRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	opts := rig.DefaultIKOptions()
	if req.Iterations > 0 {
		opts.Iterations = req.Iterations
	}
	if req.Tolerance > 0 {
		opts.Tolerance = req.Tolerance
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	skeleton := s.anim.Skeleton()
	var end rig.BoneID
	switch {
	case req.BoneName != "":
		bone, ok := skeleton.BoneByName(req.BoneName)
		if !ok {
			return notFound(c, "bone not found: "+req.BoneName)
		}
		end = bone.ID()
	case req.Bone != nil:
		end = rig.BoneID(*req.Bone)
	default:
		return badRequest(c, "bone or bone_name is required")
	}

	converged, err := rig.SolveIKWithOptions(skeleton, end, req.X, req.Y, opts)
	if err != nil {
		return controlError(c, err)
	}
	if err := rig.ForwardKinematics(skeleton); err != nil {
		return controlError(c, err)
	}

	bone, _ := skeleton.Bone(end)
	tipX, tipY := bone.Tip()
	return c.JSON(IKResponse{
		Converged: converged,
		Bone:      int(end),
		TipX:      tipX,
		TipY:      tipY,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

// controlError maps animation errors onto HTTP statuses: unknown names
// are 404, everything else is a 500.
func controlError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, animator.ErrClipNotFound) || errors.Is(err, rig.ErrBoneNotFound) {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
