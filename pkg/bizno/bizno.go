// Package bizno valida el número de registro de negocio (사업자등록번호) de 10 dígitos.
package bizno

import (
	"fmt"
	"unicode"
)

// pesos aplicados a los 9 primeros dígitos, de izquierda a derecha.
var weights = [9]int{1, 3, 7, 1, 3, 7, 1, 3, 5}

// Validate valida el dígito de verificación del número (con o sin guiones).
// number puede ser "220-81-62517" o "2208162517".
func Validate(number string) error {
	digits := extractDigits(number)
	if len(digits) != 10 {
		return fmt.Errorf("bizno: el número debe tener 10 dígitos, se encontraron %d", len(digits))
	}
	expected, err := CheckDigit(string(digits[:9]))
	if err != nil {
		return err
	}
	if digits[9] != expected {
		return fmt.Errorf("bizno: dígito de verificación inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// CheckDigit calcula el dígito de verificación para los 9 primeros dígitos.
func CheckDigit(number string) (byte, error) {
	digits := extractDigits(number)
	if len(digits) < 9 {
		return 0, fmt.Errorf("bizno: se requieren 9 dígitos para calcular el dígito de verificación, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	// el noveno dígito aporta además la decena de su producto por 5
	sum += int(digits[8]-'0') * 5 / 10
	return byte('0' + (10-sum%10)%10), nil
}

// Normalize devuelve el número en formato XXX-XX-XXXXX. Asume un número ya validado.
func Normalize(number string) string {
	d := string(extractDigits(number))
	if len(d) != 10 {
		return number
	}
	return d[:3] + "-" + d[3:5] + "-" + d[5:]
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return out
}
