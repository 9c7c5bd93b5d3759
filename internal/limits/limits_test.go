package limits

import "testing"

func TestWithinLimit(t *testing.T) {
	g := NewGuard(300)

	cases := []struct {
		size int64
		want bool
	}{
		{0, true},
		{1, true},
		{300 * 1024 * 1024, true},
		{300*1024*1024 + 1, false},
		{301 * 1024 * 1024, false},
	}
	for _, c := range cases {
		if got := g.WithinLimit(c.size); got != c.want {
			t.Errorf("WithinLimit(%d) = %v, want %v", c.size, got, c.want)
		}
	}
}

func TestWithinLimitBoundaryMatchesBytes(t *testing.T) {
	for _, mb := range []int{1, 50, 300} {
		g := NewGuard(mb)
		limit := int64(mb) * 1024 * 1024
		for _, size := range []int64{0, limit - 1, limit, limit + 1, 2 * limit} {
			want := size <= limit
			if got := g.WithinLimit(size); got != want {
				t.Errorf("guard %dMB: WithinLimit(%d) = %v, want %v", mb, size, got, want)
			}
		}
	}
}
