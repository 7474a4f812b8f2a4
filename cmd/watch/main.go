// Watch - live frame monitor
//
// Connects to a running animd daemon and prints animation frames as
// they stream in. Optionally starts a clip first so there is something
// to watch.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/animator"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/stream"
)

func main() {
	addr := flag.String("addr", "localhost:8090", "daemon host:port")
	play := flag.String("play", "", "clip to start before watching")
	bones := flag.Bool("bones", false, "print per-bone world positions")
	flag.Parse()

	fmt.Println("👀 Animation Frame Watch")
	fmt.Println("========================")
	fmt.Printf("Daemon: %s\n\n", *addr)

	if *play != "" {
		ctrl := stream.NewController("http://" + *addr)
		if _, err := ctrl.Play(*play); err != nil {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("▶️  Playing %q\n", *play)
	}

	client := stream.NewClient("ws://" + *addr + "/ws")
	client.OnFrame = func(f animator.Frame) {
		printFrame(f, *bones)
	}
	client.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "\nwatch: stream error: %v\n", err)
		os.Exit(1)
	}
	if err := client.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println("Streaming (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\n👋 Done")
}

func printFrame(f animator.Frame, bones bool) {
	fmt.Printf("t=%8.3f  state=%-8s  clip=%-10s", f.Time, f.State, f.Clip)
	if f.BlendClip != "" {
		fmt.Printf("  blend=%s@%.2f", f.BlendClip, f.BlendAlpha)
	}
	fmt.Println()

	if !bones {
		return
	}
	ids := make([]int, 0, len(f.Skeleton.Bones))
	for key := range f.Skeleton.Bones {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		b := f.Skeleton.Bones[strconv.Itoa(id)]
		fmt.Printf("    [%2d] %-12s pos=(%+.3f, %+.3f) tip=(%+.3f, %+.3f)\n",
			id, b.Name, b.WorldX, b.WorldY, b.TipX, b.TipY)
	}
}
