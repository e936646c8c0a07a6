package domain

// Static reference data for conductor selection. The tables are populated at
// package initialisation and never mutated afterwards, so they are safe to
// share across any number of concurrent sizing runs.

// standardSizes lists the standard conductor cross-sections in mm²,
// ascending. Selection walks this sequence and picks the first entry that
// satisfies every constraint.
var standardSizes = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240, 300}

// ampacity holds the base current-carrying capacity in amps per material and
// size, before derating. Aluminum is not manufactured below 10 mm², so those
// entries are absent and the sizes are skipped during selection.
var ampacity = map[ConductorMaterial]map[float64]float64{
	MaterialCopper: {
		1.5: 17.5, 2.5: 24, 4: 32, 6: 41, 10: 57, 16: 76,
		25: 101, 35: 125, 50: 151, 70: 192, 95: 232, 120: 269,
		150: 309, 185: 353, 240: 415, 300: 477,
	},
	MaterialAluminum: {
		10: 44, 16: 59, 25: 78, 35: 97, 50: 118, 70: 150,
		95: 181, 120: 210, 150: 241, 185: 275, 240: 324, 300: 372,
	},
}

// ElectricalParams carries the per-length impedance of a conductor used by
// the voltage-drop formula.
type ElectricalParams struct {
	ROhmPerKM float64
	XOhmPerKM float64
}

var electricalParams = map[ConductorMaterial]map[float64]ElectricalParams{
	MaterialCopper: {
		1.5: {12.1, 0.115}, 2.5: {7.41, 0.110}, 4: {4.61, 0.107},
		6: {3.08, 0.100}, 10: {1.83, 0.094}, 16: {1.15, 0.090},
		25: {0.727, 0.086}, 35: {0.524, 0.083}, 50: {0.387, 0.083},
		70: {0.268, 0.082}, 95: {0.193, 0.082}, 120: {0.153, 0.080},
		150: {0.124, 0.080}, 185: {0.0991, 0.080}, 240: {0.0754, 0.079},
		300: {0.0601, 0.079},
	},
	MaterialAluminum: {
		10: {3.08, 0.094}, 16: {1.91, 0.090}, 25: {1.20, 0.086},
		35: {0.868, 0.083}, 50: {0.641, 0.083}, 70: {0.443, 0.082},
		95: {0.320, 0.082}, 120: {0.253, 0.080}, 150: {0.206, 0.080},
		185: {0.164, 0.080}, 240: {0.125, 0.079}, 300: {0.100, 0.079},
	},
}

// temperatureBuckets and temperatureDerating map ambient temperature to a
// thermal derating factor. Factors are relative to a 30°C reference and
// decrease monotonically as temperature rises.
var temperatureBuckets = []float64{20, 25, 30, 35, 40, 45, 50, 55, 60}

var temperatureDerating = map[float64]float64{
	20: 1.08, 25: 1.04, 30: 1.00, 35: 0.96, 40: 0.91,
	45: 0.87, 50: 0.82, 55: 0.76, 60: 0.71,
}

var installationDerating = map[InstallationMethod]float64{
	InstallFreeAir:         1.00,
	InstallClippedDirect:   0.95,
	InstallConduitSurface:  0.92,
	InstallConduitEmbedded: 0.88,
	InstallBuriedDirect:    0.85,
	InstallBuriedInDuct:    0.80,
}

// shortCircuitK holds the adiabatic k constant (A·s^0.5/mm²) per material
// and insulation, per IEC 60364-4-43.
var shortCircuitK = map[ConductorMaterial]map[InsulationType]float64{
	MaterialCopper:   {InsulationPVC: 115, InsulationXLPE: 143},
	MaterialAluminum: {InsulationPVC: 76, InsulationXLPE: 94},
}

var voltageDropLimitPercent = map[LoadType]float64{
	LoadTypeLighting:     3.0,
	LoadTypeGeneralPower: 5.0,
	LoadTypeMotors:       5.0,
	LoadTypeEVChargers:   5.0,
	LoadTypeDataCenters:  3.0,
}

// StandardSizes returns a copy of the ordered standard cross-section list.
func StandardSizes() []float64 {
	out := make([]float64, len(standardSizes))
	copy(out, standardSizes)
	return out
}

// TemperatureBuckets returns a copy of the ambient-temperature buckets, in
// ascending order.
func TemperatureBuckets() []float64 {
	out := make([]float64, len(temperatureBuckets))
	copy(out, temperatureBuckets)
	return out
}

// AmpacityFor returns the base ampacity for the material and size. The
// second return is false when the combination is not manufactured (for
// example aluminum below 10 mm²); callers skip such sizes rather than fail.
func AmpacityFor(material ConductorMaterial, sizeMM2 float64) (float64, bool) {
	table, ok := ampacity[material]
	if !ok {
		return 0, false
	}
	amps, ok := table[sizeMM2]
	return amps, ok
}

// ElectricalParamsFor returns the R/X parameters for the material and size,
// with the same absent-key semantics as AmpacityFor.
func ElectricalParamsFor(material ConductorMaterial, sizeMM2 float64) (ElectricalParams, bool) {
	table, ok := electricalParams[material]
	if !ok {
		return ElectricalParams{}, false
	}
	params, ok := table[sizeMM2]
	return params, ok
}

// TempDeratingFactor resolves the thermal derating factor for an ambient
// temperature. An exact bucket matches directly; a temperature between
// buckets resolves to the next higher bucket (never the lower, optimistic
// one); a temperature above the highest bucket saturates at the highest
// bucket's factor.
func TempDeratingFactor(ambientTempC float64) float64 {
	if factor, ok := temperatureDerating[ambientTempC]; ok {
		return factor
	}
	for _, bucket := range temperatureBuckets {
		if bucket >= ambientTempC {
			return temperatureDerating[bucket]
		}
	}
	return temperatureDerating[temperatureBuckets[len(temperatureBuckets)-1]]
}

// InstallationDeratingFactor resolves the installation derating factor,
// falling back to 1.0 for unrecognised methods.
func InstallationDeratingFactor(method InstallationMethod) float64 {
	if factor, ok := installationDerating[method]; ok {
		return factor
	}
	return 1.0
}

// ShortCircuitKFor returns the adiabatic k constant for the material and
// insulation combination.
func ShortCircuitKFor(material ConductorMaterial, insulation InsulationType) (float64, bool) {
	table, ok := shortCircuitK[material]
	if !ok {
		return 0, false
	}
	k, ok := table[insulation]
	return k, ok
}

// VDropLimitFor returns the default allowable voltage-drop percentage for a
// load category.
func VDropLimitFor(loadType LoadType) (float64, bool) {
	limit, ok := voltageDropLimitPercent[loadType]
	return limit, ok
}
