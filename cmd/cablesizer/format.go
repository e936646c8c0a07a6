package main

import (
	"fmt"
	"io"

	"github.com/fieldworks/cablesizer/internal/domain"
)

func printSizingReport(w io.Writer, runID string, out domain.CableSizerOutput) {
	d := out.DerivedValues

	fmt.Fprintf(w, "Cable sizing run %s\n\n", runID)
	fmt.Fprintf(w, "Load current:        %.2f A (%s, %.0f V, %.1f kW, pf %.2f)\n",
		d.LoadCurrentA, out.Inputs.VoltageSystem, out.Inputs.VoltageV, out.Inputs.LoadPowerKW, out.Inputs.PowerFactor)
	fmt.Fprintf(w, "Allowable drop:      %.2f%% (%.2f V over %.0f m)\n",
		d.AllowableVDropPercent, d.AllowableVDropV, out.Inputs.CableLengthM)
	fmt.Fprintf(w, "Derating:            %.2f (temperature) x %.2f (installation) = %.3f\n",
		d.TemperatureDerating, d.InstallationDerating, d.TotalDerating)
	fmt.Fprintf(w, "Required ampacity:   %.2f A after derating\n", d.EffectiveRequiredAmpacityA)
	if d.ShortCircuitMinMM2 > 0 {
		fmt.Fprintf(w, "Short-circuit floor: %.2f mm² (fault current %.0f A)\n", d.ShortCircuitMinMM2, d.FaultCurrentUsedA)
	}

	fmt.Fprintf(w, "\n%-10s %-12s %-12s %-9s %-9s %-6s %-6s %-4s\n",
		"SIZE mm²", "AMPACITY A", "DERATED A", "VDROP V", "VDROP %", "AMP", "VDROP", "SC")
	for _, step := range out.Reasoning {
		marker := " "
		if step.SizeMM2 == out.FinalSelection.SizeMM2 {
			marker = ">"
		}
		fmt.Fprintf(w, "%s%-9g %-12.1f %-12.1f %-9.2f %-9.2f %-6s %-6s %-4s\n",
			marker, step.SizeMM2, step.BaseAmpacityA, step.DeratedAmpacityA,
			step.VoltageDropV, step.VoltageDropPercent,
			passFail(step.AmpacityOK), passFail(step.VDropOK), passFail(step.ShortCircuitOK))
	}

	fmt.Fprintf(w, "\nSelected: %g mm²\n%s\n", out.FinalSelection.SizeMM2, out.Explanation)
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}

func printReferenceTables(w io.Writer) {
	materials := []domain.ConductorMaterial{domain.MaterialCopper, domain.MaterialAluminum}

	fmt.Fprintln(w, "Standard sizes (mm²):")
	for _, size := range domain.StandardSizes() {
		fmt.Fprintf(w, " %g", size)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\n%-10s %-14s %-14s %-12s %-12s\n", "SIZE mm²", "Cu AMPACITY", "Al AMPACITY", "R Ω/km (Cu)", "X Ω/km (Cu)")
	for _, size := range domain.StandardSizes() {
		cu, _ := domain.AmpacityFor(domain.MaterialCopper, size)
		params, _ := domain.ElectricalParamsFor(domain.MaterialCopper, size)
		alText := "-"
		if al, ok := domain.AmpacityFor(domain.MaterialAluminum, size); ok {
			alText = fmt.Sprintf("%.0f", al)
		}
		fmt.Fprintf(w, "%-10g %-14.1f %-14s %-12g %-12g\n", size, cu, alText, params.ROhmPerKM, params.XOhmPerKM)
	}

	fmt.Fprintln(w, "\nTemperature derating:")
	for _, bucket := range domain.TemperatureBuckets() {
		fmt.Fprintf(w, "  %3.0f°C  %.2f\n", bucket, domain.TempDeratingFactor(bucket))
	}

	fmt.Fprintln(w, "\nInstallation derating:")
	methods := []domain.InstallationMethod{
		domain.InstallFreeAir,
		domain.InstallClippedDirect,
		domain.InstallConduitSurface,
		domain.InstallConduitEmbedded,
		domain.InstallBuriedDirect,
		domain.InstallBuriedInDuct,
	}
	for _, method := range methods {
		fmt.Fprintf(w, "  %-18s %.2f\n", method, domain.InstallationDeratingFactor(method))
	}

	fmt.Fprintln(w, "\nShort-circuit k (A·s^0.5/mm²):")
	insulations := []domain.InsulationType{domain.InsulationPVC, domain.InsulationXLPE}
	for _, material := range materials {
		for _, insulation := range insulations {
			if k, ok := domain.ShortCircuitKFor(material, insulation); ok {
				fmt.Fprintf(w, "  %-9s %-5s %.0f\n", material, insulation, k)
			}
		}
	}

	fmt.Fprintln(w, "\nDefault voltage-drop limits (%):")
	loadTypes := []domain.LoadType{
		domain.LoadTypeLighting,
		domain.LoadTypeGeneralPower,
		domain.LoadTypeMotors,
		domain.LoadTypeEVChargers,
		domain.LoadTypeDataCenters,
	}
	for _, loadType := range loadTypes {
		if limit, ok := domain.VDropLimitFor(loadType); ok {
			fmt.Fprintf(w, "  %-14s %.1f\n", loadType, limit)
		}
	}
}
