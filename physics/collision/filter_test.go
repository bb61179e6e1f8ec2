package collision

import "testing"

func TestFilterCheck(t *testing.T) {
	player := &Filter{Category: 0x1, Mask: AllCategories}
	turret := &Filter{Category: 0x2, Mask: AllCategories, Group: -1}
	turretBullet := &Filter{Category: 0x4, Mask: AllCategories, Group: -1}
	ghost := &Filter{Category: 0x8, Mask: 0x0}
	squad := &Filter{Category: 0x10, Mask: 0x0, Group: 3}

	tests := []struct {
		name string
		a, b *Filter
		want bool
	}{
		{"nil_left", nil, player, true},
		{"nil_both", nil, nil, true},
		{"default_pair", NewFilter(), NewFilter(), true},
		{"negative_group", turret, turretBullet, false},
		{"different_groups_fall_back_to_bits", player, turretBullet, true},
		{"mask_rejects", player, ghost, false},
		{"positive_group_overrides_mask", squad, &Filter{Category: 0x20, Mask: 0, Group: 3}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(tc.a, tc.b); got != tc.want {
				t.Fatalf("Check(a, b) = %v, want %v", got, tc.want)
			}
			if got := Check(tc.b, tc.a); got != tc.want {
				t.Fatalf("Check(b, a) = %v, want %v", got, tc.want)
			}
		})
	}
}
