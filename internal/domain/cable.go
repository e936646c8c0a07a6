package domain

// VoltageSystem identifies the supply arrangement feeding the load.
type VoltageSystem string

const (
	// VoltageSystemSinglePhase is a single-phase supply (phase to neutral).
	VoltageSystemSinglePhase VoltageSystem = "single_phase"
	// VoltageSystemThreePhase is a balanced three-phase supply.
	VoltageSystemThreePhase VoltageSystem = "three_phase"
)

// ConductorMaterial enumerates supported conductor materials.
type ConductorMaterial string

const (
	// MaterialCopper selects copper conductors.
	MaterialCopper ConductorMaterial = "copper"
	// MaterialAluminum selects aluminum conductors. Sizes below 10 mm² are
	// not manufactured in aluminum and are skipped during selection.
	MaterialAluminum ConductorMaterial = "aluminum"
)

// InsulationType enumerates supported cable insulation systems.
type InsulationType string

const (
	// InsulationPVC is thermoplastic insulation rated 70°C.
	InsulationPVC InsulationType = "PVC"
	// InsulationXLPE is cross-linked polyethylene insulation rated 90°C.
	InsulationXLPE InsulationType = "XLPE"
)

// InstallationMethod describes how the cable is physically installed, which
// determines how well it sheds heat.
type InstallationMethod string

const (
	// InstallFreeAir is an open, spaced installation on trays or racks.
	InstallFreeAir InstallationMethod = "in_air_spaced"
	// InstallClippedDirect is a cable clipped directly to a surface.
	InstallClippedDirect InstallationMethod = "clipped_direct"
	// InstallConduitSurface is a surface-mounted conduit run.
	InstallConduitSurface InstallationMethod = "conduit_surface"
	// InstallConduitEmbedded is conduit embedded in a wall or slab.
	InstallConduitEmbedded InstallationMethod = "conduit_embedded"
	// InstallBuriedDirect is a cable buried directly in the ground.
	InstallBuriedDirect InstallationMethod = "buried_direct"
	// InstallBuriedInDuct is a cable pulled through a buried duct.
	InstallBuriedInDuct InstallationMethod = "buried_in_duct"
)

// LoadType categorises the connected load for default voltage-drop limits.
type LoadType string

const (
	// LoadTypeLighting covers lighting circuits (tighter drop limit).
	LoadTypeLighting LoadType = "lighting"
	// LoadTypeGeneralPower covers socket outlets and general power.
	LoadTypeGeneralPower LoadType = "general_power"
	// LoadTypeMotors covers motor circuits.
	LoadTypeMotors LoadType = "motors"
	// LoadTypeEVChargers covers electric-vehicle charging equipment.
	LoadTypeEVChargers LoadType = "ev_chargers"
	// LoadTypeDataCenters covers data-centre distribution (tighter limit).
	LoadTypeDataCenters LoadType = "data_centers"
)

// ShortCircuitParams enables and parameterises the adiabatic thermal
// withstand check. FaultCurrentAtLoadKA takes priority over the system-level
// FaultCurrentKA; when only the latter is supplied the fault current at the
// load is assumed to be AssumeFaultAtLoadFraction of it (default 0.10,
// clamped to [0,1]).
type ShortCircuitParams struct {
	Enabled                   bool     `json:"enabled"`
	FaultCurrentKA            float64  `json:"fault_current_ka,omitempty"`
	FaultCurrentAtLoadKA      float64  `json:"fault_current_at_load_ka,omitempty"`
	AssumeFaultAtLoadFraction *float64 `json:"assume_fault_at_load_fraction,omitempty"`
	DisconnectionTimeS        float64  `json:"disconnection_time_s,omitempty"`
}

// CableSizerInput is the immutable request value object consumed by the
// sizing engine. Callers are expected to have validated basic ranges
// (positive magnitudes, enum membership) at the boundary.
type CableSizerInput struct {
	VoltageSystem         VoltageSystem       `json:"voltage_system"`
	VoltageV              float64             `json:"voltage_v"`
	LoadPowerKW           float64             `json:"load_power_kw"`
	PowerFactor           float64             `json:"power_factor"`
	CableLengthM          float64             `json:"cable_length_m"`
	Material              ConductorMaterial   `json:"material"`
	Insulation            InsulationType      `json:"insulation"`
	InstallationMethod    InstallationMethod  `json:"installation_method"`
	AmbientTemperatureC   float64             `json:"ambient_temperature_c"`
	LoadType              LoadType            `json:"load_type,omitempty"`
	AllowableVDropPercent *float64            `json:"allowable_vdrop_percent,omitempty"`
	ShortCircuit          *ShortCircuitParams `json:"short_circuit,omitempty"`
}

// CableSizerDerivedValues captures the intermediate quantities computed
// before the candidate walk. They are informational outputs; gating happens
// per candidate size.
type CableSizerDerivedValues struct {
	LoadCurrentA               float64 `json:"load_current_a"`
	AllowableVDropPercent      float64 `json:"allowable_vdrop_percent"`
	AllowableVDropV            float64 `json:"allowable_vdrop_v"`
	TemperatureDerating        float64 `json:"temperature_derating"`
	InstallationDerating       float64 `json:"installation_derating"`
	TotalDerating              float64 `json:"total_derating"`
	EffectiveRequiredAmpacityA float64 `json:"effective_required_ampacity_a"`
	FaultCurrentUsedA          float64 `json:"fault_current_used_a,omitempty"`
	ShortCircuitMinMM2         float64 `json:"short_circuit_min_mm2,omitempty"`
}

// CableSizerReasoningStep records the evaluation of a single candidate size.
// Every candidate present in the tables for the chosen material produces a
// step, pass or fail, so the trail is a complete audit of the decision.
type CableSizerReasoningStep struct {
	SizeMM2            float64 `json:"size_mm2"`
	BaseAmpacityA      float64 `json:"base_ampacity_a"`
	DeratedAmpacityA   float64 `json:"derated_ampacity_a"`
	AmpacityOK         bool    `json:"ampacity_ok"`
	VoltageDropV       float64 `json:"voltage_drop_v"`
	VoltageDropPercent float64 `json:"voltage_drop_percent"`
	VDropOK            bool    `json:"vdrop_ok"`
	ShortCircuitOK     bool    `json:"short_circuit_ok"`
}

// CableSizerOutput is the full result of a sizing run: the echoed inputs,
// the derived values, the ordered reasoning trail, the selected step, and a
// human-readable explanation of why that size won.
type CableSizerOutput struct {
	Inputs         CableSizerInput           `json:"inputs"`
	DerivedValues  CableSizerDerivedValues   `json:"derived_values"`
	Reasoning      []CableSizerReasoningStep `json:"reasoning"`
	FinalSelection CableSizerReasoningStep   `json:"final_selection"`
	Explanation    string                    `json:"explanation"`
}
