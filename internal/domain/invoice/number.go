package invoice

import "time"

const numberLayout = "20060102-150405"

// Number genera el número legible INV-YYYYMMDD-HHMMSS para el instante t.
// Dos facturas en el mismo segundo colisionan; la unicidad la impone el almacenamiento.
func Number(t time.Time) string {
	return "INV-" + t.Format(numberLayout)
}
