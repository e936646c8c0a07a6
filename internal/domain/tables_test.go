package domain

import (
	"sort"
	"testing"
)

func TestTempDeratingFactor(t *testing.T) {
	t.Run("exact bucket", func(t *testing.T) {
		if got := TempDeratingFactor(30); got != 1.00 {
			t.Fatalf("expected factor 1.00 at 30°C, got %v", got)
		}
		if got := TempDeratingFactor(45); got != 0.87 {
			t.Fatalf("expected factor 0.87 at 45°C, got %v", got)
		}
	})

	t.Run("between buckets resolves to next higher", func(t *testing.T) {
		if got := TempDeratingFactor(33); got != 0.96 {
			t.Fatalf("expected 35°C bucket factor 0.96 for 33°C, got %v", got)
		}
		if got := TempDeratingFactor(41.5); got != 0.87 {
			t.Fatalf("expected 45°C bucket factor 0.87 for 41.5°C, got %v", got)
		}
	})

	t.Run("below lowest bucket uses lowest bucket", func(t *testing.T) {
		if got := TempDeratingFactor(12); got != 1.08 {
			t.Fatalf("expected 20°C bucket factor 1.08 for 12°C, got %v", got)
		}
	})

	t.Run("above highest bucket saturates", func(t *testing.T) {
		if got := TempDeratingFactor(100); got != 0.71 {
			t.Fatalf("expected highest-bucket factor 0.71 for 100°C, got %v", got)
		}
	})

	t.Run("non-increasing across buckets", func(t *testing.T) {
		buckets := TemperatureBuckets()
		for i := 1; i < len(buckets); i++ {
			prev := TempDeratingFactor(buckets[i-1])
			curr := TempDeratingFactor(buckets[i])
			if curr > prev {
				t.Fatalf("derating increased from %v to %v between %v°C and %v°C", prev, curr, buckets[i-1], buckets[i])
			}
		}
	})
}

func TestInstallationDeratingFactor(t *testing.T) {
	if got := InstallationDeratingFactor(InstallFreeAir); got != 1.00 {
		t.Fatalf("expected 1.00 for free air, got %v", got)
	}
	if got := InstallationDeratingFactor(InstallBuriedInDuct); got != 0.80 {
		t.Fatalf("expected 0.80 for buried in duct, got %v", got)
	}
	if got := InstallationDeratingFactor(InstallationMethod("hovering")); got != 1.0 {
		t.Fatalf("expected fallback 1.0 for unknown method, got %v", got)
	}
}

func TestAluminumSmallSizesAbsent(t *testing.T) {
	for _, size := range []float64{1.5, 2.5, 4, 6} {
		if _, ok := AmpacityFor(MaterialAluminum, size); ok {
			t.Fatalf("expected no aluminum ampacity entry at %g mm²", size)
		}
		if _, ok := ElectricalParamsFor(MaterialAluminum, size); ok {
			t.Fatalf("expected no aluminum electrical parameters at %g mm²", size)
		}
	}
	if _, ok := AmpacityFor(MaterialAluminum, 10); !ok {
		t.Fatalf("expected aluminum ampacity entry at 10 mm²")
	}
}

func TestStandardSizes(t *testing.T) {
	sizes := StandardSizes()
	if len(sizes) != 16 {
		t.Fatalf("expected 16 standard sizes, got %d", len(sizes))
	}
	if !sort.Float64sAreSorted(sizes) {
		t.Fatalf("expected standard sizes in ascending order, got %v", sizes)
	}

	// Returned slice must be a copy; mutating it must not leak into the table.
	sizes[0] = 9999
	if fresh := StandardSizes(); fresh[0] != 1.5 {
		t.Fatalf("StandardSizes leaked internal state: got %v", fresh[0])
	}
}

func TestCopperCoversAllStandardSizes(t *testing.T) {
	for _, size := range StandardSizes() {
		if _, ok := AmpacityFor(MaterialCopper, size); !ok {
			t.Fatalf("missing copper ampacity at %g mm²", size)
		}
		if _, ok := ElectricalParamsFor(MaterialCopper, size); !ok {
			t.Fatalf("missing copper electrical parameters at %g mm²", size)
		}
	}
}

func TestShortCircuitKFor(t *testing.T) {
	cases := []struct {
		material   ConductorMaterial
		insulation InsulationType
		want       float64
	}{
		{MaterialCopper, InsulationPVC, 115},
		{MaterialCopper, InsulationXLPE, 143},
		{MaterialAluminum, InsulationPVC, 76},
		{MaterialAluminum, InsulationXLPE, 94},
	}
	for _, tc := range cases {
		k, ok := ShortCircuitKFor(tc.material, tc.insulation)
		if !ok || k != tc.want {
			t.Fatalf("expected k=%v for %s/%s, got %v (ok=%v)", tc.want, tc.material, tc.insulation, k, ok)
		}
	}
	if _, ok := ShortCircuitKFor(MaterialCopper, InsulationType("rubber")); ok {
		t.Fatalf("expected no k constant for unknown insulation")
	}
}

func TestVDropLimitFor(t *testing.T) {
	if limit, ok := VDropLimitFor(LoadTypeLighting); !ok || limit != 3.0 {
		t.Fatalf("expected lighting limit 3.0, got %v (ok=%v)", limit, ok)
	}
	if limit, ok := VDropLimitFor(LoadTypeGeneralPower); !ok || limit != 5.0 {
		t.Fatalf("expected general power limit 5.0, got %v (ok=%v)", limit, ok)
	}
	if _, ok := VDropLimitFor(LoadType("welding")); ok {
		t.Fatalf("expected no limit for unknown load type")
	}
}
