package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fieldworks/cablesizer/internal/domain"
	"github.com/fieldworks/cablesizer/internal/platform/observability"
)

var (
	// ErrCableSizingInvalidInput signals request data outside the validated
	// ranges, such as a non-positive voltage or an unknown material.
	ErrCableSizingInvalidInput = errors.New("cable sizing: invalid input")
	// ErrNoSuitableSize is returned when no standard cross-section satisfies
	// all constraints. The condition is user-correctable (shorter run,
	// different material, relaxed drop limit) and never transient.
	ErrNoSuitableSize = errors.New("cable sizing: no suitable size")
)

var sqrt3 = math.Sqrt(3)

// SizingDefaults holds the fallback values applied when a request leaves the
// corresponding optional field unset.
type SizingDefaults struct {
	VDropPercent        float64
	FaultAtLoadFraction float64
	DisconnectionTimeS  float64
}

// CableSizer selects the minimum standard conductor cross-section satisfying
// thermal ampacity, voltage drop and short-circuit withstand. It is pure and
// side-effect free; a single instance may serve concurrent callers.
type CableSizer struct {
	defaults SizingDefaults
	logger   func(context.Context, string, map[string]any)
}

// CableSizerDeps collects the dependencies for NewCableSizer.
type CableSizerDeps struct {
	Defaults SizingDefaults
	Logger   func(context.Context, string, map[string]any)
}

// NewCableSizer constructs the engine, filling unset defaults with the
// documented engineering values.
func NewCableSizer(deps CableSizerDeps) (*CableSizer, error) {
	defaults := deps.Defaults
	if defaults.VDropPercent == 0 {
		defaults.VDropPercent = 5.0
	}
	if defaults.FaultAtLoadFraction == 0 {
		// Typical fault-current attenuation along a feeder; a domain-expert
		// judgment call carried over as a documented default.
		defaults.FaultAtLoadFraction = 0.10
	}
	if defaults.DisconnectionTimeS == 0 {
		defaults.DisconnectionTimeS = 0.4
	}

	if defaults.VDropPercent < 0 || defaults.VDropPercent > 100 {
		return nil, errors.New("cable sizer: default voltage drop percent out of range")
	}
	if defaults.FaultAtLoadFraction < 0 || defaults.FaultAtLoadFraction > 1 {
		return nil, errors.New("cable sizer: fault-at-load fraction out of range")
	}
	if defaults.DisconnectionTimeS < 0 {
		return nil, errors.New("cable sizer: disconnection time must be positive")
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &CableSizer{defaults: defaults, logger: logger}, nil
}

// SizeCableCommand wraps the request value object.
type SizeCableCommand struct {
	Input domain.CableSizerInput
}

// SizeCableResult carries the complete sizing output.
type SizeCableResult struct {
	Output domain.CableSizerOutput
}

// SizeCable walks the standard sizes ascending and returns the first size
// satisfying every constraint, together with the full reasoning trail. It
// fails only with ErrNoSuitableSize (after a complete trail) or
// ErrCableSizingInvalidInput (before any computation).
func (s *CableSizer) SizeCable(ctx context.Context, cmd SizeCableCommand) (SizeCableResult, error) {
	in := cmd.Input
	if err := validateSizingInput(in); err != nil {
		return SizeCableResult{}, err
	}

	ctx, span := observability.StartSpan(ctx, "cablesizer.size",
		attribute.String("cable.material", string(in.Material)),
		attribute.String("cable.voltage_system", string(in.VoltageSystem)),
		attribute.Float64("cable.length_m", in.CableLengthM),
	)
	defer span.End()

	derived := s.deriveValues(in)

	cosPhi := in.PowerFactor
	sinPhi := math.Sqrt(math.Max(0, 1-cosPhi*cosPhi))
	lineFactor := 2.0
	if in.VoltageSystem == domain.VoltageSystemThreePhase {
		lineFactor = sqrt3
	}

	scEnabled := in.ShortCircuit != nil && in.ShortCircuit.Enabled

	steps := make([]domain.CableSizerReasoningStep, 0, len(domain.StandardSizes()))
	selectedIdx := -1
	ampacityOnlyIdx := -1

	for _, size := range domain.StandardSizes() {
		baseAmpacity, ok := domain.AmpacityFor(in.Material, size)
		if !ok {
			continue
		}
		params, ok := domain.ElectricalParamsFor(in.Material, size)
		if !ok {
			continue
		}

		deratedAmpacity := baseAmpacity * derived.TotalDerating
		ampacityOK := deratedAmpacity >= derived.LoadCurrentA

		rPerM := params.ROhmPerKM / 1000
		xPerM := params.XOhmPerKM / 1000
		vdropV := lineFactor * derived.LoadCurrentA * in.CableLengthM * (rPerM*cosPhi + xPerM*sinPhi)
		vdropPercent := vdropV / in.VoltageV * 100
		vdropOK := vdropPercent <= derived.AllowableVDropPercent

		shortCircuitOK := true
		if scEnabled {
			shortCircuitOK = size >= derived.ShortCircuitMinMM2
		}

		step := domain.CableSizerReasoningStep{
			SizeMM2:            size,
			BaseAmpacityA:      baseAmpacity,
			DeratedAmpacityA:   deratedAmpacity,
			AmpacityOK:         ampacityOK,
			VoltageDropV:       vdropV,
			VoltageDropPercent: vdropPercent,
			VDropOK:            vdropOK,
			ShortCircuitOK:     shortCircuitOK,
		}
		steps = append(steps, step)

		if ampacityOK && ampacityOnlyIdx < 0 {
			ampacityOnlyIdx = len(steps) - 1
		}
		if ampacityOK && vdropOK && shortCircuitOK && selectedIdx < 0 {
			selectedIdx = len(steps) - 1
		}
	}

	if selectedIdx < 0 {
		s.logger(ctx, "cable_size_not_found", map[string]any{
			"load_current_a": derived.LoadCurrentA,
			"material":       string(in.Material),
			"length_m":       in.CableLengthM,
		})
		span.SetAttributes(attribute.Bool("cable.size_found", false))
		return SizeCableResult{}, fmt.Errorf("%w: no standard cross-section carries %.2f A over %.0f m under the stated conditions", ErrNoSuitableSize, derived.LoadCurrentA, in.CableLengthM)
	}

	selected := steps[selectedIdx]
	explanation := buildSizingExplanation(in.Material, selected, steps[ampacityOnlyIdx])

	s.logger(ctx, "cable_size_selected", map[string]any{
		"size_mm2":           selected.SizeMM2,
		"load_current_a":     derived.LoadCurrentA,
		"derated_ampacity_a": selected.DeratedAmpacityA,
		"vdrop_percent":      selected.VoltageDropPercent,
		"upsized":            selected.SizeMM2 > steps[ampacityOnlyIdx].SizeMM2,
	})
	span.SetAttributes(
		attribute.Bool("cable.size_found", true),
		attribute.Float64("cable.selected_mm2", selected.SizeMM2),
	)

	output := domain.CableSizerOutput{
		Inputs:         in,
		DerivedValues:  derived,
		Reasoning:      steps,
		FinalSelection: selected,
		Explanation:    explanation,
	}

	return SizeCableResult{Output: output}, nil
}

// deriveValues computes the request-level quantities that do not depend on a
// candidate size: load current, resolved drop limit, derating product and
// the short-circuit minimum cross-section.
func (s *CableSizer) deriveValues(in domain.CableSizerInput) domain.CableSizerDerivedValues {
	powerW := in.LoadPowerKW * 1000

	var loadCurrent float64
	switch in.VoltageSystem {
	case domain.VoltageSystemThreePhase:
		loadCurrent = powerW / (sqrt3 * in.VoltageV * in.PowerFactor)
	default:
		loadCurrent = powerW / (in.VoltageV * in.PowerFactor)
	}

	vdropPercent := s.defaults.VDropPercent
	switch {
	case in.AllowableVDropPercent != nil && *in.AllowableVDropPercent > 0:
		vdropPercent = *in.AllowableVDropPercent
	case in.LoadType != "":
		if limit, ok := domain.VDropLimitFor(in.LoadType); ok {
			vdropPercent = limit
		}
	}

	tempDerating := domain.TempDeratingFactor(in.AmbientTemperatureC)
	installDerating := domain.InstallationDeratingFactor(in.InstallationMethod)
	totalDerating := tempDerating * installDerating

	derived := domain.CableSizerDerivedValues{
		LoadCurrentA:               loadCurrent,
		AllowableVDropPercent:      vdropPercent,
		AllowableVDropV:            in.VoltageV * vdropPercent / 100,
		TemperatureDerating:        tempDerating,
		InstallationDerating:       installDerating,
		TotalDerating:              totalDerating,
		EffectiveRequiredAmpacityA: loadCurrent / totalDerating,
	}

	if in.ShortCircuit != nil && in.ShortCircuit.Enabled {
		derived.FaultCurrentUsedA = s.resolveFaultCurrent(*in.ShortCircuit)
		if k, ok := domain.ShortCircuitKFor(in.Material, in.Insulation); ok && derived.FaultCurrentUsedA > 0 {
			disconnection := in.ShortCircuit.DisconnectionTimeS
			if disconnection <= 0 {
				disconnection = s.defaults.DisconnectionTimeS
			}
			derived.ShortCircuitMinMM2 = derived.FaultCurrentUsedA * math.Sqrt(disconnection) / k
		}
	}

	return derived
}

// resolveFaultCurrent applies the documented priority: explicit at-load
// current first, then the system-level current attenuated by the assumed
// fraction, else zero (check effectively skipped).
func (s *CableSizer) resolveFaultCurrent(sc domain.ShortCircuitParams) float64 {
	if sc.FaultCurrentAtLoadKA > 0 {
		return sc.FaultCurrentAtLoadKA * 1000
	}
	if sc.FaultCurrentKA > 0 {
		fraction := s.defaults.FaultAtLoadFraction
		if sc.AssumeFaultAtLoadFraction != nil {
			fraction = *sc.AssumeFaultAtLoadFraction
		}
		fraction = math.Min(math.Max(fraction, 0), 1)
		return sc.FaultCurrentKA * 1000 * fraction
	}
	return 0
}

func buildSizingExplanation(material domain.ConductorMaterial, selected, ampacityOnly domain.CableSizerReasoningStep) string {
	if selected.SizeMM2 <= ampacityOnly.SizeMM2 {
		return fmt.Sprintf("%g mm² %s selected: smallest standard size whose derated ampacity (%.1f A) covers the load current, with voltage drop at %.2f%%.",
			selected.SizeMM2, material, selected.DeratedAmpacityA, selected.VoltageDropPercent)
	}

	var causes []string
	if !ampacityOnly.VDropOK {
		causes = append(causes, "voltage drop")
	}
	if !ampacityOnly.ShortCircuitOK {
		causes = append(causes, "short-circuit withstand")
	}
	cause := strings.Join(causes, " and ")
	if cause == "" {
		cause = "downstream constraints"
	}

	return fmt.Sprintf("%g mm² %s selected: upsized from %g mm² (smallest size passing ampacity) due to %s.",
		selected.SizeMM2, material, ampacityOnly.SizeMM2, cause)
}

func validateSizingInput(in domain.CableSizerInput) error {
	switch in.VoltageSystem {
	case domain.VoltageSystemSinglePhase, domain.VoltageSystemThreePhase:
	default:
		return fmt.Errorf("%w: unknown voltage system %q", ErrCableSizingInvalidInput, in.VoltageSystem)
	}
	if in.VoltageV <= 0 {
		return fmt.Errorf("%w: voltage must be positive", ErrCableSizingInvalidInput)
	}
	if in.LoadPowerKW <= 0 {
		return fmt.Errorf("%w: load power must be positive", ErrCableSizingInvalidInput)
	}
	if in.PowerFactor <= 0 || in.PowerFactor > 1 {
		return fmt.Errorf("%w: power factor must be within (0, 1]", ErrCableSizingInvalidInput)
	}
	if in.CableLengthM <= 0 {
		return fmt.Errorf("%w: cable length must be positive", ErrCableSizingInvalidInput)
	}
	switch in.Material {
	case domain.MaterialCopper, domain.MaterialAluminum:
	default:
		return fmt.Errorf("%w: unknown material %q", ErrCableSizingInvalidInput, in.Material)
	}
	switch in.Insulation {
	case domain.InsulationPVC, domain.InsulationXLPE:
	default:
		return fmt.Errorf("%w: unknown insulation %q", ErrCableSizingInvalidInput, in.Insulation)
	}
	if in.AllowableVDropPercent != nil && *in.AllowableVDropPercent <= 0 {
		return fmt.Errorf("%w: allowable voltage drop must be positive when set", ErrCableSizingInvalidInput)
	}
	return nil
}
