package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses catalog dates. Malformed values collapse to the zero
// time instead of failing, since historical data is best-effort.
func ParseDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	// Try dd/mm/yyyy format first
	t, err := time.Parse("02/01/2006", dateStr)
	if err == nil {
		return t
	}
	// Fallback to yyyy-mm-dd just in case
	t, err = time.Parse("2006-01-02", dateStr)
	if err == nil {
		return t
	}
	return time.Time{}
}

// ParseFloat parses locale-formatted numbers ("1.234,56"). Plain
// dot-decimal values ("45.5") are accepted too. Malformed input yields 0.
func ParseFloat(valStr string) float64 {
	valStr = strings.TrimSpace(valStr)
	if valStr == "" {
		return 0.0
	}
	cleanStr := valStr
	if strings.Contains(cleanStr, ",") {
		// Comma decimal: dots are thousands separators
		cleanStr = strings.ReplaceAll(cleanStr, ".", "")
		cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
	}
	val, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0.0
	}
	return val
}

// ParsePercent parses percentage strings such as "42,5%" or "42.5".
func ParsePercent(valStr string) float64 {
	valStr = strings.TrimSuffix(strings.TrimSpace(valStr), "%")
	return ParseFloat(valStr)
}

var digitsRe = regexp.MustCompile(`\d+`)

// ParseCount extracts the leading integer from strings like "12 vagas".
func ParseCount(valStr string) int {
	m := digitsRe.FindString(valStr)
	if m == "" {
		return 0
	}
	val, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return val
}

var rangeSepRe = regexp.MustCompile(`(?i)\s+a\s+`)

// ParseCreditRange parses catalog credit ranges: either "50.000,00 A
// 80.000,00" or a single value, which yields min == max.
func ParseCreditRange(valStr string) (min, max float64) {
	parts := rangeSepRe.Split(strings.TrimSpace(valStr), 2)
	if len(parts) == 2 {
		return ParseFloat(parts[0]), ParseFloat(parts[1])
	}
	v := ParseFloat(valStr)
	return v, v
}

// ParseBool recognizes the catalog's affirmative markers.
func ParseBool(valStr string) bool {
	return strings.EqualFold(valStr, "Sim") || strings.EqualFold(valStr, "Yes") || valStr == "1"
}

func ParseInt64(valStr string) int64 {
	if valStr == "" {
		return 0
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return 0
	}
	return val
}
