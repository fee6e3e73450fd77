package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/alexshd/mie"
)

// JSON cannot carry NaN, so undefined quantities are encoded as null.
type propertiesJSON struct {
	Variant string   `json:"variant"`
	NMax    int      `json:"nmax"`
	Qext    float64  `json:"qext"`
	Qsca    float64  `json:"qsca"`
	Qabs    float64  `json:"qabs"`
	Qb      float64  `json:"qb"`
	Asy     *float64 `json:"asy"`
	Qratio  *float64 `json:"qratio"`
}

type complexJSON struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type amplitudeJSON struct {
	U  float64     `json:"u"`
	S1 complexJSON `json:"s1"`
	S2 complexJSON `json:"s2"`
	I1 float64     `json:"i1"`
	I2 float64     `json:"i2"`
}

type sweepRowJSON struct {
	Index int      `json:"index"`
	X     float64  `json:"x"`
	Y     *float64 `json:"y,omitempty"`
	propertiesJSON
	Amplitudes []amplitudeJSON `json:"amplitudes,omitempty"`
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func toPropertiesJSON(variant mie.Variant, nmax int, p mie.Properties) propertiesJSON {
	return propertiesJSON{
		Variant: variant.String(),
		NMax:    nmax,
		Qext:    p.Qext,
		Qsca:    p.Qsca,
		Qabs:    p.Qabs,
		Qb:      p.Qb,
		Asy:     optional(p.Asy),
		Qratio:  optional(p.Qratio),
	}
}

func toAmplitudeJSON(a mie.Amplitude) amplitudeJSON {
	i1, i2 := mie.Intensities(a.S1, a.S2)
	return amplitudeJSON{
		U:  a.U,
		S1: complexJSON{Re: real(a.S1), Im: imag(a.S1)},
		S2: complexJSON{Re: real(a.S2), Im: imag(a.S2)},
		I1: i1,
		I2: i2,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProperties(w io.Writer, variant mie.Variant, nmax int, p mie.Properties) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "variant\t%s\n", variant)
	fmt.Fprintf(tw, "nmax\t%d\n", nmax)
	fmt.Fprintf(tw, "qext\t%.15g\n", p.Qext)
	fmt.Fprintf(tw, "qsca\t%.15g\n", p.Qsca)
	fmt.Fprintf(tw, "qabs\t%.15g\n", p.Qabs)
	fmt.Fprintf(tw, "qb\t%.15g\n", p.Qb)
	fmt.Fprintf(tw, "asy\t%.15g\n", p.Asy)
	fmt.Fprintf(tw, "qratio\t%.15g\n", p.Qratio)
	return tw.Flush()
}

func writeAmplitudes(w io.Writer, amps []mie.Amplitude) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "u\tS1\tS2\t|S1|²\t|S2|²")
	for _, a := range amps {
		i1, i2 := mie.Intensities(a.S1, a.S2)
		fmt.Fprintf(tw, "%g\t%.12g\t%.12g\t%.6g\t%.6g\n", a.U, a.S1, a.S2, i1, i2)
	}
	return tw.Flush()
}

func writeSweep(w io.Writer, results []mie.SweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "index\tx\ty\tvariant\tnmax\tqext\tqsca\tqabs\tqb\tasy\tqratio")
	for _, r := range results {
		x, _ := r.Parameters.X()
		y := "-"
		if v, ok := r.Parameters.Y(); ok {
			y = fmt.Sprintf("%g", v)
		}
		p := r.Properties
		fmt.Fprintf(tw, "%d\t%g\t%s\t%s\t%d\t%.8g\t%.8g\t%.8g\t%.8g\t%.8g\t%.8g\n",
			r.Index, x, y, r.Variant, r.NMax, p.Qext, p.Qsca, p.Qabs, p.Qb, p.Asy, p.Qratio)
	}
	return tw.Flush()
}

func toSweepJSON(results []mie.SweepResult) []sweepRowJSON {
	rows := make([]sweepRowJSON, len(results))
	for i, r := range results {
		x, _ := r.Parameters.X()
		row := sweepRowJSON{
			Index:          r.Index,
			X:              x,
			propertiesJSON: toPropertiesJSON(r.Variant, r.NMax, r.Properties),
		}
		if y, ok := r.Parameters.Y(); ok {
			row.Y = &y
		}
		for _, a := range r.Amplitudes {
			row.Amplitudes = append(row.Amplitudes, toAmplitudeJSON(a))
		}
		rows[i] = row
	}
	return rows
}
