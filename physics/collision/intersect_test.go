package collision

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/physics"
)

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStaticAABBvsStaticAABBSymmetric(t *testing.T) {
	tests := []struct {
		name       string
		posA, extA cp.Vector
		posB, extB cp.Vector
		hit        bool
	}{
		{"x_axis_overlap", vec(0, 0), vec(5, 5), vec(8, 0), vec(5, 5), true},
		{"y_axis_overlap", vec(0, 0), vec(2, 2), vec(1, -3), vec(2, 2), true},
		{"tie_prefers_y", vec(0, 0), vec(1, 1), vec(1, 1), vec(1, 1), true},
		{"different_sizes", vec(3, 4), vec(10, 1), vec(-2, 4.5), vec(1, 1), true},
		{"touching_edges", vec(0, 0), vec(1, 1), vec(2, 0), vec(1, 1), false},
		{"apart_on_y", vec(0, 0), vec(5, 5), vec(0, 20), vec(5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ab, ba physics.Contact
			hitAB := StaticAABBvsStaticAABB(tc.posA, tc.extA, tc.posB, tc.extB, &ab)
			hitBA := StaticAABBvsStaticAABB(tc.posB, tc.extB, tc.posA, tc.extA, &ba)
			if hitAB != hitBA {
				t.Fatalf("asymmetric result: A,B=%v B,A=%v", hitAB, hitBA)
			}
			if hitAB != tc.hit {
				t.Fatalf("expected hit=%v, got %v", tc.hit, hitAB)
			}
			if !tc.hit {
				return
			}
			if ab.Normal.X != -ba.Normal.X || ab.Normal.Y != -ba.Normal.Y {
				t.Fatalf("expected antiparallel normals, got %v and %v", ab.Normal, ba.Normal)
			}
			if !near(ab.Distance, -ba.Distance) {
				t.Fatalf("expected opposite distances, got %v and %v", ab.Distance, ba.Distance)
			}
		})
	}
}

func TestStaticAABBvsStaticAABBPenetration(t *testing.T) {
	var c physics.Contact
	if !StaticAABBvsStaticAABB(vec(0, 0), vec(5, 5), vec(8, 0), vec(5, 5), &c) {
		t.Fatalf("expected overlap")
	}
	if c.Normal != vec(1, 0) {
		t.Fatalf("expected normal (1,0), got %v", c.Normal)
	}
	if c.Distance != 2 || c.Delta != vec(2, 0) {
		t.Fatalf("expected penetration 2 on x, got distance=%v delta=%v", c.Distance, c.Delta)
	}
	if c.Position != vec(5, 0) {
		t.Fatalf("expected contact on A's right face, got %v", c.Position)
	}

	if !StaticAABBvsStaticAABB(vec(8, 0), vec(5, 5), vec(0, 0), vec(5, 5), &c) {
		t.Fatalf("expected overlap with boxes swapped")
	}
	if c.Normal != vec(-1, 0) {
		t.Fatalf("expected normal (-1,0) with boxes swapped, got %v", c.Normal)
	}
}

func TestContactResetOnMiss(t *testing.T) {
	c := physics.Contact{
		Distance:      9,
		Time:          0.3,
		Normal:        vec(1, 0),
		Position:      vec(4, 4),
		Delta:         vec(2, 2),
		SweepPosition: vec(7, 7),
	}
	if StaticAABBvsStaticAABB(vec(0, 0), vec(1, 1), vec(10, 10), vec(1, 1), &c) {
		t.Fatalf("expected miss")
	}
	if c != (physics.Contact{}) {
		t.Fatalf("expected a fully cleared contact, got %+v", c)
	}
}

func TestSweepWithoutDisplacement(t *testing.T) {
	tests := []struct {
		name     string
		posB     cp.Vector
		hit      bool
		wantTime float64
	}{
		{"overlapping", vec(8, 0), true, 0},
		{"apart", vec(30, 0), false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sweep, overlap physics.Contact
			hit := StaticAABBvsSweptAABB(vec(0, 0), vec(5, 5), tc.posB, vec(5, 5), cp.Vector{}, &sweep)
			want := StaticAABBvsStaticAABB(vec(0, 0), vec(5, 5), tc.posB, vec(5, 5), &overlap)
			if hit != want || hit != tc.hit {
				t.Fatalf("expected hit=%v to match overlap=%v", hit, want)
			}
			if sweep.Time != tc.wantTime {
				t.Fatalf("expected time %v, got %v", tc.wantTime, sweep.Time)
			}
			if sweep.SweepPosition != tc.posB {
				t.Fatalf("expected sweep position to stay at %v, got %v", tc.posB, sweep.SweepPosition)
			}
			if hit && sweep.Normal != overlap.Normal {
				t.Fatalf("expected overlap normal %v, got %v", overlap.Normal, sweep.Normal)
			}
		})
	}
}

func TestSegmentAxisSwap(t *testing.T) {
	var h, v physics.Contact
	hitH := StaticSegmentvsStaticAABB(vec(5, 0), vec(1, 1), vec(0, 0), vec(10, 0), 0, 0, &h)
	hitV := StaticSegmentvsStaticAABB(vec(0, 5), vec(1, 1), vec(0, 0), vec(0, 10), 0, 0, &v)
	if !hitH || !hitV {
		t.Fatalf("expected both segments to hit, got %v and %v", hitH, hitV)
	}
	if !near(h.Time, 0.4) || !near(v.Time, 0.4) {
		t.Fatalf("expected time 0.4 on both axes, got %v and %v", h.Time, v.Time)
	}
	if h.Normal != vec(-1, 0) || v.Normal != vec(0, -1) {
		t.Fatalf("expected mirrored normals, got %v and %v", h.Normal, v.Normal)
	}
	if h.Position.X != v.Position.Y || h.Position.Y != v.Position.X {
		t.Fatalf("expected mirrored positions, got %v and %v", h.Position, v.Position)
	}

	hitH = StaticSegmentvsStaticAABB(vec(5, 10), vec(1, 1), vec(0, 0), vec(10, 0), 0, 0, &h)
	hitV = StaticSegmentvsStaticAABB(vec(10, 5), vec(1, 1), vec(0, 0), vec(0, 10), 0, 0, &v)
	if hitH || hitV {
		t.Fatalf("expected segments beside the box to miss, got %v and %v", hitH, hitV)
	}
}

func TestSegmentMisses(t *testing.T) {
	tests := []struct {
		name         string
		pos, ext     cp.Vector
		start, delta cp.Vector
	}{
		{"ends_before_box", vec(20, 0), vec(2, 2), vec(0, 0), vec(10, 0)},
		{"starts_past_box", vec(-5, 0), vec(1, 1), vec(0, 0), vec(10, 0)},
		{"vertical_beside_box", vec(0, 5), vec(1, 1), vec(10, 0), vec(0, 10)},
		{"diagonal_passes_corner", vec(5, 0), vec(1, 1), vec(0, 3), vec(10, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c physics.Contact
			if StaticSegmentvsStaticAABB(tc.pos, tc.ext, tc.start, tc.delta, 0, 0, &c) {
				t.Fatalf("expected miss, got contact %+v", c)
			}
			s := NewSegment(tc.start, tc.start.Add(tc.delta))
			if IsSegmentVsAABB(s, tc.pos, tc.ext, 0, 0) {
				t.Fatalf("predicate disagrees with contact test")
			}
		})
	}
}

func TestSegmentPredicateMatchesContactTest(t *testing.T) {
	s := NewSegment(vec(0, 0), vec(10, 4))
	var c physics.Contact
	hit := StaticSegmentvsStaticAABB(vec(6, 2), vec(1, 1), s.Start, s.Delta, 0.5, 0.5, &c)
	if !hit {
		t.Fatalf("expected diagonal segment to hit")
	}
	if !IsSegmentVsAABB(s, vec(6, 2), vec(1, 1), 0.5, 0.5) {
		t.Fatalf("predicate disagrees with contact test")
	}
}

func TestBulletSweepStopsShortOfObstacle(t *testing.T) {
	var c physics.Contact
	hit := StaticAABBvsSweptAABB(vec(52, 0), vec(1, 1), vec(0, 0), vec(1, 1), vec(100, 0), &c)
	if !hit {
		t.Fatalf("expected bullet sweep to hit")
	}
	if c.Time >= 0.5 || !near(c.Time, 0.5-Epsilon) {
		t.Fatalf("expected time just under 0.5, got %v", c.Time)
	}
	if c.Normal != vec(-1, 0) {
		t.Fatalf("expected normal facing the bullet, got %v", c.Normal)
	}
	if c.SweepPosition.X >= 50 || !near(c.SweepPosition.X, 50-100*Epsilon) {
		t.Fatalf("expected sweep position just short of x=50, got %v", c.SweepPosition)
	}
	if c.Position != vec(51, 0) {
		t.Fatalf("expected contact point on the obstacle face, got %v", c.Position)
	}
}

func TestBulletSweepMissTravelsFullDelta(t *testing.T) {
	var c physics.Contact
	if StaticAABBvsSweptAABB(vec(52, 30), vec(1, 1), vec(0, 0), vec(1, 1), vec(100, 0), &c) {
		t.Fatalf("expected miss")
	}
	if c.Time != 1 || c.SweepPosition != vec(100, 0) {
		t.Fatalf("expected full travel, got time=%v sweep=%v", c.Time, c.SweepPosition)
	}
}

func TestAABBvsStaticSolidAABB(t *testing.T) {
	tests := []struct {
		name         string
		posA         cp.Vector
		bias         cp.Vector
		wantNormal   cp.Vector
		wantDistance float64
	}{
		{"landing_on_top", vec(0, -9), vec(1, 1), vec(0, -1), -1},
		{"resting_gap", vec(0, -12), vec(1, 1), vec(0, -1), 2},
		{"hitting_left_wall", vec(-9, 0), vec(1, 1), vec(-1, 0), -1},
		{"bias_suppresses_axis", vec(-9, 0), vec(0, 1), vec(0, 0), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c physics.Contact
			if !AABBvsStaticSolidAABB(tc.posA, vec(5, 5), vec(0, 0), vec(5, 5), tc.bias, &c) {
				t.Fatalf("solid test always reports a contact")
			}
			if c.Normal != tc.wantNormal {
				t.Fatalf("expected normal %v, got %v", tc.wantNormal, c.Normal)
			}
			if !near(c.Distance, tc.wantDistance) {
				t.Fatalf("expected distance %v, got %v", tc.wantDistance, c.Distance)
			}
		})
	}
}

func TestAABBvsStaticSolidAABBFixedNormal(t *testing.T) {
	var c physics.Contact
	AABBvsStaticSolidAABBFixedNormal(vec(-9, -12), vec(5, 5), vec(0, 0), vec(5, 5), vec(0, -1), &c)
	if c.Normal != vec(0, -1) {
		t.Fatalf("expected the fixed normal, got %v", c.Normal)
	}
	if !near(c.Distance, 2) {
		t.Fatalf("expected distance 2 along the fixed normal, got %v", c.Distance)
	}
}
