package ui

import (
	"testing"

	"ca-kernel/pkg/cluster"
	kernel "ca-kernel/pkg/core"
)

func TestClusterColorsDiffer(t *testing.T) {
	seen := map[[3]uint8]bool{}
	for id := 0; id < 12; id++ {
		c := clusterColor(id, 255)
		if c.A != 255 {
			t.Fatalf("alpha %d, expected 255", c.A)
		}
		key := [3]uint8{c.R, c.G, c.B}
		if seen[key] {
			t.Fatalf("component %d reuses colour %v", id, key)
		}
		seen[key] = true
	}
}

func TestClusterColorIsPremultiplied(t *testing.T) {
	c := clusterColor(3, 100)
	if c.R > 100 || c.G > 100 || c.B > 100 {
		t.Fatalf("colour %v exceeds its alpha", c)
	}
}

func TestFillClusterRGBA(t *testing.T) {
	g := kernel.NewDense(kernel.Vec2{X: 4, Y: 2})
	g.Set(kernel.Vec2{X: 0, Y: 0}, kernel.Cell{State: kernel.Alive(1)})
	g.Set(kernel.Vec2{X: 3, Y: 1}, kernel.Cell{State: kernel.Alive(1)})
	l := cluster.Label[kernel.Vec2](g, cluster.Options{})

	buf := make([]byte, 4*8)
	for i := range buf {
		buf[i] = 9
	}
	fillClusterRGBA(buf, 4, 2, l)
	if buf[3] != tintAlpha || buf[7*4+3] != tintAlpha {
		t.Fatalf("members not tinted: %v", buf)
	}
	if buf[1*4+3] != 0 {
		t.Fatalf("empty cell not cleared: %v", buf[4:8])
	}
	if buf[0] == buf[7*4] && buf[1] == buf[7*4+1] && buf[2] == buf[7*4+2] {
		t.Fatal("two components share a colour")
	}
}

func TestRelabelOncePerGeneration(t *testing.T) {
	var r relabel
	if !r.due(0, false) {
		t.Fatal("first frame not due")
	}
	if r.due(0, false) {
		t.Fatal("relabeled twice for the same generation")
	}
	if !r.due(1, false) {
		t.Fatal("new generation not due")
	}
	if !r.due(1, true) {
		t.Fatal("toggling ByState not due")
	}
	r.invalidate()
	if !r.due(1, true) {
		t.Fatal("invalidated state not due")
	}
}
