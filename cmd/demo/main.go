// Demo - offline walkthrough of the animation controller
//
// Builds the humanoid rig, solves an IK target, and plays, blends, and
// transitions between the bundled clips, printing the skeleton state at
// each step. No daemon required.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/clip"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/preset"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

func main() {
	fmt.Println("🦴 BlackRoad Animation Controller Demo")
	fmt.Println("======================================")

	skeleton, err := preset.Humanoid()
	if err != nil {
		fail(err)
	}
	fmt.Printf("\nSkeleton: %d bones\n", skeleton.Len())
	for _, b := range skeleton.Bones() {
		parent := "-"
		if !b.IsRoot() {
			parent = strconv.Itoa(int(b.ParentID()))
		}
		fmt.Printf("  [%2d] %-12s parent=%-2s len=%.2f\n", b.ID(), b.Name(), parent, b.Length())
	}

	if err := rig.ForwardKinematics(skeleton); err != nil {
		fail(err)
	}
	spine, _ := skeleton.Bone(preset.Spine)
	tipX, tipY := spine.Tip()
	fmt.Printf("\nSpine tip after FK: (%.3f, %.3f)\n", tipX, tipY)

	fmt.Println("\n--- Inverse Kinematics ---")
	converged, err := rig.SolveIKWithOptions(skeleton, preset.LeftLowerArm, 0.4, 1.2, rig.IKOptions{
		Iterations: 30,
		Tolerance:  0.01,
	})
	if err != nil {
		fail(err)
	}
	if err := rig.ForwardKinematics(skeleton); err != nil {
		fail(err)
	}
	hand, _ := skeleton.Bone(preset.LeftLowerArm)
	handX, handY := hand.Tip()
	fmt.Printf("IK to (0.4, 1.2): converged=%v\n", converged)
	fmt.Printf("Left hand tip: (%.3f, %.3f)\n", handX, handY)

	fmt.Println("\n--- Clips ---")
	walk, idle, jump := preset.WalkClip(), preset.IdleClip(), preset.JumpClip()
	for _, c := range []*clip.Clip{walk, idle, jump} {
		fmt.Printf("%s: %.2fs, %d keyframes\n", c.Name(), c.Duration(), c.Len())
	}

	fmt.Println("\n--- Playback ---")
	anim := animator.New(skeleton, walk, idle, jump)
	if err := anim.Play("walk"); err != nil {
		fail(err)
	}
	for i := 0; i < 5; i++ {
		if err := anim.Update(0.1); err != nil {
			fail(err)
		}
		fmt.Printf("t=%.1fs clip=%s spine=%+.4f\n", anim.Elapsed(), anim.CurrentClip(), spine.CurrentAngle)
	}

	fmt.Println("\n--- Blending ---")
	if err := anim.Blend("walk", "idle", 0.5); err != nil {
		fail(err)
	}
	if err := anim.Update(0.2); err != nil {
		fail(err)
	}
	fmt.Printf("blend alpha=%.2f state=%s\n", anim.BlendAlpha(), anim.State())

	fmt.Println("\n--- Transition ---")
	if err := anim.Play("walk"); err != nil {
		fail(err)
	}
	if err := anim.TransitionTo("jump", 0.2); err != nil {
		fail(err)
	}
	for i := 0; i < 10; i++ {
		if err := anim.Update(0.05); err != nil {
			fail(err)
		}
		fmt.Printf("t=%.2f clip=%s state=%s\n", float64(i+1)*0.05, anim.CurrentClip(), anim.State())
	}

	fmt.Println("\n--- Sampling ---")
	for _, t := range []float64{0.0, 0.25, 0.5, 0.75} {
		pose, err := walk.Sample(t)
		if err != nil {
			fail(err)
		}
		fmt.Printf("t=%.2f: l_leg=%+.3f r_leg=%+.3f\n", t, pose[preset.LeftUpperLeg], pose[preset.RightUpperLeg])
	}

	fmt.Println("\n--- Export ---")
	frame := anim.ExportFrame()
	fmt.Printf("state=%s clip=%s\n", frame.State, frame.Clip)
	for _, id := range []rig.BoneID{preset.Root, preset.Spine, preset.Head} {
		b := frame.Skeleton.Bones[strconv.Itoa(int(id))]
		fmt.Printf("  %s: pos=(%.3f, %.3f) tip=(%.3f, %.3f)\n", b.Name, b.WorldX, b.WorldY, b.TipX, b.TipY)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "demo: %v\n", err)
	os.Exit(1)
}
