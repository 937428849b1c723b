// Command generate writes sample ERP and bank record files into testdata/,
// in the shape an upstream document extractor would hand to the reconciler.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	const invoiceCount = 40

	var erp []map[string]any
	var bank []map[string]any

	dateFormats := []func(day int) string{
		func(day int) string { return fmt.Sprintf("2024-03-%02d", day) },
		func(day int) string { return fmt.Sprintf("03/%02d/2024", day) },
		func(day int) string { return fmt.Sprintf("Mar %d, 2024", day) },
	}
	separators := []string{"", "-", " "}
	statuses := []string{"paid", "PENDING", "open "}

	for i := 1; i <= invoiceCount; i++ {
		day := 1 + rng.Intn(28)
		amount := 10 + rng.Float64()*990
		amount = math.Round(amount*100) / 100

		erpAmount := any(amount)
		if amount > 1000 || rng.Float64() < 0.2 {
			// Some exports render amounts as formatted strings.
			erpAmount = formatWithThousands(amount)
		}

		erp = append(erp, map[string]any{
			"Date":       dateFormats[rng.Intn(len(dateFormats))](day),
			"Amount":     erpAmount,
			"Invoice ID": fmt.Sprintf("inv%04d", i),
			"Status":     statuses[rng.Intn(len(statuses))],
		})

		// Roughly 1 in 8 invoices never reached the bank statement.
		if rng.Float64() < 0.125 {
			continue
		}

		bankAmount := amount
		switch roll := rng.Float64(); {
		case roll < 0.10:
			// Rounding artifact within tolerance.
			bankAmount = math.Round((amount+(rng.Float64()*0.08-0.04))*100) / 100
		case roll < 0.18:
			// Genuine mismatch.
			bankAmount = math.Round((amount+2+rng.Float64()*20)*100) / 100
		}

		sep := separators[rng.Intn(len(separators))]
		bank = append(bank, map[string]any{
			"Date":        fmt.Sprintf("2024-03-%02d", day),
			"Description": fmt.Sprintf("Payment INV%s%04d", sep, i),
			"Amount":      bankAmount,
			"Ref ID":      fmt.Sprintf("TRX-%06d", rng.Intn(1000000)),
		})
	}

	// A duplicated ERP invoice.
	erp = append(erp, map[string]any{
		"Date":       "2024-03-15",
		"Amount":     250.00,
		"Invoice ID": "INV0003",
		"Status":     "Paid",
	})

	// Bank rows with no invoice marker at all.
	for i := 0; i < 3; i++ {
		bank = append(bank, map[string]any{
			"Date":        fmt.Sprintf("2024-03-%02d", 1+rng.Intn(28)),
			"Description": "Monthly account fee",
			"Amount":      math.Round(rng.Float64()*5000)/100 + 5,
			"Ref ID":      fmt.Sprintf("TRX-%06d", rng.Intn(1000000)),
		})
	}

	writeJSON(filepath.Join(baseDir, "erp_records.json"), erp)
	writeJSON(filepath.Join(baseDir, "bank_records.json"), bank)

	log.Printf("Wrote %d ERP and %d bank records to %s", len(erp), len(bank), baseDir)
}

func formatWithThousands(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]
	if len(intPart) <= 3 {
		return s
	}
	out := ""
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out += ","
		}
		out += string(r)
	}
	return out + frac
}

func writeJSON(path string, v any) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
}

func findTestdataDir() string {
	candidates := []string{"testdata", filepath.Join("..", "..", "testdata"), "."}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && st.IsDir() {
			return c
		}
	}
	return "."
}
