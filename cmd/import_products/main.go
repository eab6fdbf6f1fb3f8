// import_products genera un script SQL que carga el catálogo de productos desde un CSV
// con columnas sku,name,category,unit_price,unit (la primera fila es cabecera).
//
// Uso: go run ./cmd/import_products [-euckr] [-out productos.sql] catalogo.csv
// Sin -out escribe en stdout. Los SKU ya cargados se omiten (ON CONFLICT DO NOTHING).
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/tax"
)

type catalogRow struct {
	SKU       string
	Name      string
	Category  entity.ProductCategory
	UnitPrice int64
	Unit      string
}

func main() {
	euckr := flag.Bool("euckr", false, "el CSV viene en EUC-KR (exportaciones de Excel coreano)")
	outPath := flag.String("out", "", "archivo SQL de salida (por defecto stdout)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_products [-euckr] [-out archivo.sql] catalogo.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseCatalog(f, *euckr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := writeSQL(out, rows, uuid.NewString); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d productos\n", len(rows))
}

// parseCatalog lee el CSV y valida cada fila. El error indica la línea del archivo.
func parseCatalog(r io.Reader, euckr bool) ([]catalogRow, error) {
	if euckr {
		r = transform.NewReader(r, korean.EUCKR.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV vacío")
		}
		return nil, fmt.Errorf("cabecera: %w", err)
	}

	var rows []catalogRow
	seen := make(map[string]int)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if prev, ok := seen[row.SKU]; ok {
			return nil, fmt.Errorf("línea %d: sku %q repetido (línea %d)", line, row.SKU, prev)
		}
		seen[row.SKU] = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (catalogRow, error) {
	sku := strings.TrimSpace(rec[0])
	name := strings.TrimSpace(rec[1])
	if sku == "" || name == "" {
		return catalogRow{}, fmt.Errorf("sku y name son requeridos")
	}
	price, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", ""), 10, 64)
	if err != nil || price < 0 {
		return catalogRow{}, fmt.Errorf("unit_price inválido %q", rec[3])
	}
	unit := strings.ToUpper(strings.TrimSpace(rec[4]))
	if unit == "" {
		unit = "EA"
	}
	return catalogRow{
		SKU:       sku,
		Name:      name,
		Category:  entity.ParseCategory(rec[2]),
		UnitPrice: price,
		Unit:      unit,
	}, nil
}

// writeSQL escribe un INSERT por producto. newID se inyecta para pruebas.
func writeSQL(w io.Writer, rows []catalogRow, newID func() string) error {
	if _, err := io.WriteString(w, "-- Catálogo de productos\n-- Generado por import_products\n\n"); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w,
			"-- %s: %s\nINSERT INTO products (id, sku, name, category, unit_price, unit, status, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', %d, '%s', 'active', now(), now())\nON CONFLICT (sku) DO NOTHING;\n",
			oneLine(r.SKU), tax.Classify(r.Category),
			newID(), escapeSQL(r.SKU), escapeSQL(r.Name), escapeSQL(string(r.Category)), r.UnitPrice, escapeSQL(r.Unit))
		if err != nil {
			return err
		}
	}
	return nil
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
